package game

import (
	"fmt"
	"sort"

	"github.com/napolitain/eras/internal/catalog"
)

// Events tracks which catalog events have fired and which one, if any, is
// waiting for a player decision. At most one event is pending at a time.
type Events struct {
	catalog   *catalog.Catalog
	ids       []string // sorted, fixes trigger-check order
	fired     map[string]bool
	cooldowns map[string]float64
	pending   *catalog.Event
}

// NewEvents creates an event tracker over the catalog's events
func NewEvents(cat *catalog.Catalog) *Events {
	e := &Events{
		catalog:   cat,
		fired:     make(map[string]bool),
		cooldowns: make(map[string]float64),
	}
	for id := range cat.Events {
		e.ids = append(e.ids, id)
	}
	sort.Strings(e.ids)
	return e
}

// Pending returns the event awaiting a decision, or nil
func (e *Events) Pending() *catalog.Event {
	return e.pending
}

// Tick decays repeat-event cooldowns by elapsed simulation seconds
func (e *Events) Tick(elapsed float64) {
	for id, remaining := range e.cooldowns {
		remaining -= elapsed
		if remaining <= 0 {
			delete(e.cooldowns, id)
		} else {
			e.cooldowns[id] = remaining
		}
	}
}

// Check fires the first event whose trigger conditions hold, making it
// pending. No new event fires while one is already pending.
func (e *Events) Check(s *State, l *Ledger) *catalog.Event {
	if e.pending != nil {
		return nil
	}

	for _, id := range e.ids {
		ev := e.catalog.Events[id]
		if ev.OneTime && e.fired[id] {
			continue
		}
		if _, cooling := e.cooldowns[id]; cooling {
			continue
		}
		if !e.triggered(ev, s, l) {
			continue
		}

		e.fired[id] = true
		if !ev.OneTime && ev.Cooldown > 0 {
			e.cooldowns[id] = ev.Cooldown
		}
		e.pending = ev
		return ev
	}

	return nil
}

// triggered reports whether any of the event's triggers holds
func (e *Events) triggered(ev *catalog.Event, s *State, l *Ledger) bool {
	for _, t := range ev.Triggers {
		switch t.Kind {
		case catalog.TriggerYear:
			if s.CurrentYear >= t.Year {
				return true
			}
		case catalog.TriggerUpgrades:
			all := true
			for _, uid := range t.Upgrades {
				if !s.Owns(uid) {
					all = false
					break
				}
			}
			if all && len(t.Upgrades) > 0 {
				return true
			}
		case catalog.TriggerResource:
			value, err := l.Value(t.Resource)
			if err != nil {
				continue
			}
			if compareThreshold(value, t.Comparison, t.Threshold) {
				return true
			}
		}
	}
	return false
}

func compareThreshold(value float64, comparison string, threshold float64) bool {
	switch comparison {
	case ">=":
		return value >= threshold
	case "<=":
		return value <= threshold
	case ">":
		return value > threshold
	case "<":
		return value < threshold
	case "==":
		diff := value - threshold
		return diff < 0.01 && diff > -0.01
	}
	return false
}

// ChoiceAvailable reports whether the player meets a choice's upgrade
// requirements
func ChoiceAvailable(ch *catalog.EventChoice, s *State) bool {
	for _, uid := range ch.Requires {
		if !s.Owns(uid) {
			return false
		}
	}
	return true
}

// Resolve applies a choice of the pending event: validates requirements
// and affordability, then debits costs and applies the one-shot effects.
// A failed resolve leaves the event pending and state untouched.
func (e *Events) Resolve(choiceID string, s *State, l *Ledger) error {
	if e.pending == nil {
		return ErrNoPendingEvent
	}

	var choice *catalog.EventChoice
	for i := range e.pending.Choices {
		if e.pending.Choices[i].ID == choiceID {
			choice = &e.pending.Choices[i]
			break
		}
	}
	if choice == nil {
		return fmt.Errorf("%w: %q", ErrUnknownChoice, choiceID)
	}

	if !ChoiceAvailable(choice, s) {
		return fmt.Errorf("%w: choice %q", ErrNotEligible, choiceID)
	}
	if err := l.CheckAfford(choice.Cost); err != nil {
		return err
	}

	for _, cost := range choice.Cost {
		if err := l.Spend(cost.Resource, cost.Amount); err != nil {
			panic(fmt.Sprintf("event debit failed after validation: %v", err))
		}
	}
	for _, eff := range choice.Effects {
		if err := l.ApplyInstant(eff); err != nil {
			panic(fmt.Sprintf("event effect on unknown resource after validation: %v", err))
		}
	}

	e.pending = nil
	return nil
}

// Dismiss drops the pending event without applying any choice
func (e *Events) Dismiss() {
	e.pending = nil
}

// Reset forgets all fired events and cooldowns for a fresh session
func (e *Events) Reset() {
	e.fired = make(map[string]bool)
	e.cooldowns = make(map[string]float64)
	e.pending = nil
}
