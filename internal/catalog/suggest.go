package catalog

import "github.com/agnivade/levenshtein"

// SuggestUpgrade returns the catalog upgrade id closest to the given
// unknown id, or "" when nothing is close enough to be a plausible typo.
func (c *Catalog) SuggestUpgrade(id string) string {
	best := ""
	bestDist := -1

	for _, candidate := range c.UpgradeIDs() {
		dist := levenshtein.ComputeDistance(id, candidate)
		if dist > suggestLimit(len(candidate)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	return best
}

// suggestLimit scales the allowed edit distance with the candidate length
// so short ids don't match everything
func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
