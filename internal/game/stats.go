package game

import (
	"sort"

	"github.com/napolitain/eras/internal/catalog"
)

// UpgradeStatus is a display-oriented summary of why an upgrade is or is
// not purchasable, evaluated in the same order as the eligibility checks
// with affordability appended last.
type UpgradeStatus string

const (
	StatusUnknown            UpgradeStatus = "unknown"
	StatusOwned              UpgradeStatus = "owned"
	StatusLockedYear         UpgradeStatus = "locked_year"
	StatusExclusiveBlocked   UpgradeStatus = "exclusive_blocked"
	StatusRequirementsNotMet UpgradeStatus = "requirements_not_met"
	StatusCannotAfford       UpgradeStatus = "cannot_afford"
	StatusAvailable          UpgradeStatus = "available"
)

// Status classifies a single upgrade for display purposes
func Status(cat *catalog.Catalog, s *State, l *Ledger, id string) UpgradeStatus {
	u, ok := cat.Upgrade(id)
	if !ok {
		return StatusUnknown
	}
	if s.Owns(id) {
		return StatusOwned
	}
	if u.Year > s.CurrentYear {
		return StatusLockedYear
	}
	if !ExclusiveAvailable(u, s) {
		return StatusExclusiveBlocked
	}
	if !RequirementsMet(u, s) {
		return StatusRequirementsNotMet
	}
	if !l.CanAfford(u.Cost) {
		return StatusCannotAfford
	}
	return StatusAvailable
}

// BlockingRequirements lists the unowned upgrade ids holding an upgrade
// back. For an OR-term that is unsatisfied, every unowned alternative is
// listed.
func BlockingRequirements(cat *catalog.Catalog, s *State, id string) []string {
	u, ok := cat.Upgrade(id)
	if !ok {
		return nil
	}

	var blocking []string
	for _, req := range u.Requires {
		if req.IsAnyOf() {
			satisfied := false
			for _, alt := range req.AnyOf {
				if s.Owns(alt) {
					satisfied = true
					break
				}
			}
			if !satisfied {
				for _, alt := range req.AnyOf {
					if !s.Owns(alt) {
						blocking = append(blocking, alt)
					}
				}
			}
			continue
		}
		if !s.Owns(req.Upgrade) {
			blocking = append(blocking, req.Upgrade)
		}
	}
	return blocking
}

// TreeStats summarizes completion of one upgrade tree
type TreeStats struct {
	Total      int
	Owned      int
	Percentage float64
}

// Statistics is an overview of session progress
type Statistics struct {
	CurrentYear          int
	TotalUpgrades        int
	OwnedUpgrades        int
	AvailableUpgrades    int
	CompletionPercentage float64
	TreeStatistics       map[string]TreeStats
	NextUnlockYear       int  // zero when nothing further unlocks
	HasNextUnlock        bool
}

// Stats computes session statistics
func Stats(cat *catalog.Catalog, s *State) Statistics {
	stats := Statistics{
		CurrentYear:    s.CurrentYear,
		TotalUpgrades:  len(cat.Upgrades),
		OwnedUpgrades:  len(s.OwnedIDs()),
		TreeStatistics: make(map[string]TreeStats),
	}
	stats.AvailableUpgrades = len(AvailableUpgrades(cat, s))
	if stats.TotalUpgrades > 0 {
		stats.CompletionPercentage = float64(stats.OwnedUpgrades) / float64(stats.TotalUpgrades) * 100
	}

	for _, treeID := range cat.TreeIDs() {
		tree := cat.Trees[treeID]
		ts := TreeStats{Total: len(tree.Upgrades)}
		for uid := range tree.Upgrades {
			if s.Owns(uid) {
				ts.Owned++
			}
		}
		if ts.Total > 0 {
			ts.Percentage = float64(ts.Owned) / float64(ts.Total) * 100
		}
		stats.TreeStatistics[treeID] = ts
	}

	if year, ok := NextUnlockYear(cat, s); ok {
		stats.NextUnlockYear = year
		stats.HasNextUnlock = true
	}

	return stats
}

// NextUnlockYear returns the earliest future year in which an unowned
// upgrade unlocks
func NextUnlockYear(cat *catalog.Catalog, s *State) (int, bool) {
	var years []int
	for id, u := range cat.Upgrades {
		if u.Year > s.CurrentYear && !s.Owns(id) {
			years = append(years, u.Year)
		}
	}
	if len(years) == 0 {
		return 0, false
	}
	sort.Ints(years)
	return years[0], true
}

// UpgradesByYear groups unowned, year-locked upgrade ids by unlock year
func UpgradesByYear(cat *catalog.Catalog, s *State) map[int][]string {
	locked := make(map[int][]string)
	for _, id := range cat.UpgradeIDs() {
		u := cat.Upgrades[id]
		if u.Year > s.CurrentYear && !s.Owns(id) {
			locked[u.Year] = append(locked[u.Year], id)
		}
	}
	return locked
}
