package game

import (
	"fmt"

	"github.com/napolitain/eras/internal/catalog"
)

// Purchase executes an atomic buy: resolve, eligibility, affordability,
// payment, ownership update, full modifier recompute. Validation finishes
// before the first debit, so any failure leaves state and ledger exactly
// as they were.
func Purchase(cat *catalog.Catalog, s *State, l *Ledger, id string) error {
	u, ok := cat.Upgrade(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}

	if !Available(cat, s, id) {
		return fmt.Errorf("%w: %q", ErrNotEligible, id)
	}

	if err := l.CheckAfford(u.Cost); err != nil {
		return err
	}

	// Past this point nothing can fail: affordability of every cost was
	// just verified and ids were validated at catalog load.
	for _, cost := range u.Cost {
		if err := l.Spend(cost.Resource, cost.Amount); err != nil {
			// Unreachable unless the ledger was mutated concurrently,
			// which the single-threaded tick model forbids.
			panic(fmt.Sprintf("purchase debit failed after validation: %v", err))
		}
	}

	s.Owned[id] = true
	if u.ExclusiveGroup != "" {
		// Eligibility already rejected a group claimed by a different id,
		// so this never overwrites another owned member.
		s.SelectedExclusive[u.ExclusiveGroup] = id
	}

	l.RecomputeModifiers(s.Owned, cat)
	return nil
}
