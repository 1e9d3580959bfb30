package game

import (
	"fmt"
	"sort"

	"github.com/napolitain/eras/internal/catalog"
)

// ResourceState tracks the current value and derived production modifiers
// for a single resource. Modifiers are never persisted or accumulated
// incrementally; RecomputeModifiers rebuilds them from the owned set.
type ResourceState struct {
	Definition *catalog.ResourceDefinition
	Value      float64

	additive   float64 // sum of all additive effects from owned upgrades
	multiplier float64 // product of all multiplicative effects
}

// Rate returns net production per second: (base + additions) × multiplier.
// Additions are always totaled before the multiplier is applied.
func (s *ResourceState) Rate() float64 {
	return (s.Definition.BaseProduction + s.additive) * s.multiplier
}

// Ledger holds the per-resource state for one session. Entries are
// created once at session start and never added or removed afterwards.
type Ledger struct {
	resources map[string]*ResourceState
	ids       []string // sorted once, fixes iteration order
}

// NewLedger seeds every catalog resource with its starting stock of ten
// seconds of base production.
func NewLedger(cat *catalog.Catalog) *Ledger {
	l := &Ledger{resources: make(map[string]*ResourceState)}

	for _, id := range cat.ResourceIDs() {
		def := cat.Resources[id]
		l.resources[id] = &ResourceState{
			Definition: def,
			Value:      def.BaseProduction * 10,
			multiplier: 1,
		}
		l.ids = append(l.ids, id)
	}
	sort.Strings(l.ids)

	return l
}

// Value returns the current value of a resource
func (l *Ledger) Value(id string) (float64, error) {
	st, ok := l.resources[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	return st.Value, nil
}

// Rate returns the current net production per second of a resource
func (l *Ledger) Rate(id string) (float64, error) {
	st, ok := l.resources[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	return st.Rate(), nil
}

// State exposes the tracked state of a resource for display layers
func (l *Ledger) State(id string) (*ResourceState, bool) {
	st, ok := l.resources[id]
	return st, ok
}

// ResourceIDs returns the tracked resource ids in deterministic order
func (l *Ledger) ResourceIDs() []string {
	return l.ids
}

// Advance grows every resource by rate × elapsed, then clamps to the
// resource floor. Deterministic for a given elapsed and prior state.
func (l *Ledger) Advance(elapsed float64) {
	for _, id := range l.ids {
		st := l.resources[id]
		st.Value += st.Rate() * elapsed
		if st.Value < st.Definition.MinValue {
			st.Value = st.Definition.MinValue
		}
	}
}

// Spend debits a resource without re-clamping to the floor; the caller
// validated affordability before calling.
func (l *Ledger) Spend(id string, amount float64) error {
	st, ok := l.resources[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	if st.Value < amount {
		return &InsufficientError{Resource: id, Need: amount, Have: st.Value}
	}
	st.Value -= amount
	return nil
}

// CheckAfford verifies every cost in order and reports the first
// unaffordable resource. It never mutates the ledger.
func (l *Ledger) CheckAfford(costs []catalog.ResourceCost) error {
	for _, cost := range costs {
		st, ok := l.resources[cost.Resource]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownResource, cost.Resource)
		}
		if st.Value < cost.Amount {
			return &InsufficientError{Resource: cost.Resource, Need: cost.Amount, Have: st.Value}
		}
	}
	return nil
}

// CanAfford reports whether every cost could be paid right now
func (l *Ledger) CanAfford(costs []catalog.ResourceCost) bool {
	return l.CheckAfford(costs) == nil
}

// RecomputeModifiers rebuilds every resource's modifiers from scratch by
// folding in every effect of every owned upgrade. Additive effects commute
// and multiplicative effects commute, so map iteration order over owned
// does not change the result. Runs after every purchase and every load.
func (l *Ledger) RecomputeModifiers(owned map[string]bool, cat *catalog.Catalog) {
	for _, st := range l.resources {
		st.additive = 0
		st.multiplier = 1
	}

	for id, has := range owned {
		if !has {
			continue
		}
		u, ok := cat.Upgrade(id)
		if !ok {
			continue
		}
		for _, eff := range u.Effects {
			st, ok := l.resources[eff.Resource]
			if !ok {
				continue
			}
			switch eff.Kind {
			case catalog.EffectAdd:
				st.additive += eff.Value
			case catalog.EffectMult:
				st.multiplier *= eff.Value
			}
		}
	}
}

// ApplyInstant applies a one-shot effect directly to a resource's current
// value: additive grants add, multiplicative grants scale the stock. Used
// by event choices, never by upgrades (upgrade effects are modifiers).
func (l *Ledger) ApplyInstant(eff catalog.Effect) error {
	st, ok := l.resources[eff.Resource]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, eff.Resource)
	}

	switch eff.Kind {
	case catalog.EffectAdd:
		st.Value += eff.Value
	case catalog.EffectMult:
		st.Value *= eff.Value
	}
	if st.Value < st.Definition.MinValue {
		st.Value = st.Definition.MinValue
	}
	return nil
}

// SetValue overwrites a resource's current value; used when restoring a
// saved session.
func (l *Ledger) SetValue(id string, value float64) error {
	st, ok := l.resources[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	st.Value = value
	return nil
}

// ResetValues re-seeds every resource to its starting stock and clears
// all modifiers
func (l *Ledger) ResetValues() {
	for _, st := range l.resources {
		st.Value = st.Definition.BaseProduction * 10
		st.additive = 0
		st.multiplier = 1
	}
}
