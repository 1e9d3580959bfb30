package game

import "github.com/napolitain/eras/internal/catalog"

// Available reports whether an upgrade can legally be purchased right now.
// Pure: it never mutates state and never consults the ledger (affordability
// is a separate question answered at purchase time).
//
// Checks run cheapest and most common rejection first: ownership, year
// gate, requirement expression, exclusive group.
func Available(cat *catalog.Catalog, s *State, id string) bool {
	u, ok := cat.Upgrade(id)
	if !ok {
		return false
	}

	if s.Owns(id) {
		return false
	}

	if u.Year > s.CurrentYear {
		return false
	}

	if !RequirementsMet(u, s) {
		return false
	}

	return ExclusiveAvailable(u, s)
}

// RequirementsMet evaluates the upgrade's requirement expression: every
// term must pass. A bare-id term requires ownership; an OR-set term
// requires owning at least one alternative. An empty expression is
// vacuously true.
func RequirementsMet(u *catalog.Upgrade, s *State) bool {
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
				return false
			}
			continue
		}
		if !s.Owns(req.Upgrade) {
			return false
		}
	}
	return true
}

// ExclusiveAvailable reports whether the upgrade's exclusive-group slot is
// open. A group already claimed by a different upgrade stays closed for
// the rest of the session; there is no sell-back.
func ExclusiveAvailable(u *catalog.Upgrade, s *State) bool {
	if u.ExclusiveGroup == "" {
		return true
	}
	chosen, taken := s.SelectedExclusive[u.ExclusiveGroup]
	return !taken || chosen == u.ID
}

// AvailableUpgrades returns every currently purchasable upgrade id in
// deterministic order; display layers poll this each tick.
func AvailableUpgrades(cat *catalog.Catalog, s *State) []string {
	var ids []string
	for _, id := range cat.UpgradeIDs() {
		if Available(cat, s, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
