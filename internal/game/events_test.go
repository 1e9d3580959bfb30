package game

import (
	"errors"
	"testing"

	"github.com/napolitain/eras/internal/catalog"
)

// eventCatalog extends the shared fixture with a one-time year event and
// a repeatable resource-threshold event.
func eventCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	base := testCatalog(t)
	events := map[string]*catalog.Event{
		"panic_of_1825": {
			ID:      "panic_of_1825",
			Title:   "Financial Panic",
			OneTime: true,
			Triggers: []catalog.EventTrigger{
				{Kind: catalog.TriggerYear, Year: 1825},
			},
			Choices: []catalog.EventChoice{
				{
					ID:   "bail_out",
					Text: "Bail out the banks",
					Cost: []catalog.ResourceCost{{Resource: "capital", Amount: 30}},
					Effects: []catalog.Effect{
						{Resource: "knowledge", Kind: catalog.EffectAdd, Value: 10},
					},
				},
				{
					ID:   "let_them_fail",
					Text: "Let them fail",
					Effects: []catalog.Effect{
						{Resource: "capital", Kind: catalog.EffectMult, Value: 0.5},
					},
				},
				{
					ID:       "industrial_relief",
					Text:     "Industrial relief works",
					Requires: []string{"steam_engine"},
				},
			},
		},
		"labor_surplus": {
			ID:       "labor_surplus",
			Title:    "Labor Surplus",
			OneTime:  false,
			Cooldown: 30,
			Triggers: []catalog.EventTrigger{
				{Kind: catalog.TriggerResource, Resource: "labor", Threshold: 100, Comparison: ">="},
			},
			Choices: []catalog.EventChoice{
				{ID: "hire", Text: "Hire them"},
			},
		},
	}

	cat, err := catalog.New(base.Resources, base.Trees, base.Upgrades, events)
	if err != nil {
		t.Fatalf("failed to build event catalog: %v", err)
	}
	return cat
}

func TestEventYearTrigger(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1800)
	l := NewLedger(cat)
	e := NewEvents(cat)

	if ev := e.Check(s, l); ev != nil {
		t.Fatalf("event %q fired before its year", ev.ID)
	}

	s.CurrentYear = 1825
	ev := e.Check(s, l)
	if ev == nil || ev.ID != "panic_of_1825" {
		t.Fatalf("Check = %v, want panic_of_1825", ev)
	}
	if e.Pending() != ev {
		t.Error("fired event should be pending")
	}

	// No second event fires while one is pending.
	if err := l.SetValue("labor", 200); err != nil {
		t.Fatal(err)
	}
	if other := e.Check(s, l); other != nil {
		t.Errorf("event %q fired while another was pending", other.ID)
	}
}

func TestEventOneTimeDoesNotRefire(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1825)
	l := NewLedger(cat)
	e := NewEvents(cat)

	if ev := e.Check(s, l); ev == nil {
		t.Fatal("event did not fire")
	}
	e.Dismiss()

	if ev := e.Check(s, l); ev != nil {
		t.Errorf("one-time event refired: %q", ev.ID)
	}
}

func TestEventResolveAppliesCostsAndEffects(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1825)
	l := NewLedger(cat)
	e := NewEvents(cat)
	if err := l.SetValue("capital", 50); err != nil {
		t.Fatal(err)
	}

	if ev := e.Check(s, l); ev == nil {
		t.Fatal("event did not fire")
	}

	if err := e.Resolve("bail_out", s, l); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if got := mustValue(t, l, "capital"); !almostEqual(got, 20) {
		t.Errorf("capital = %v, want 20 after 30 debit", got)
	}
	if got := mustValue(t, l, "knowledge"); !almostEqual(got, 15) {
		t.Errorf("knowledge = %v, want 15 after +10 grant", got)
	}
	if e.Pending() != nil {
		t.Error("resolved event still pending")
	}
}

func TestEventResolveInsufficientLeavesPending(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1825)
	l := NewLedger(cat)
	e := NewEvents(cat)
	if err := l.SetValue("capital", 10); err != nil {
		t.Fatal(err)
	}

	if ev := e.Check(s, l); ev == nil {
		t.Fatal("event did not fire")
	}

	err := e.Resolve("bail_out", s, l)
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("error = %v, want ErrInsufficient", err)
	}
	if e.Pending() == nil {
		t.Error("failed resolve must leave the event pending")
	}
	if got := mustValue(t, l, "capital"); !almostEqual(got, 10) {
		t.Errorf("capital = %v, want unchanged 10", got)
	}
}

func TestEventChoiceRequirements(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1825)
	l := NewLedger(cat)
	e := NewEvents(cat)

	if ev := e.Check(s, l); ev == nil {
		t.Fatal("event did not fire")
	}

	err := e.Resolve("industrial_relief", s, l)
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("error = %v, want ErrNotEligible without steam_engine", err)
	}

	s.Owned["steam_engine"] = true
	if err := e.Resolve("industrial_relief", s, l); err != nil {
		t.Errorf("resolve with requirement owned failed: %v", err)
	}
}

func TestEventResolveErrors(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1800)
	l := NewLedger(cat)
	e := NewEvents(cat)

	if err := e.Resolve("hire", s, l); !errors.Is(err, ErrNoPendingEvent) {
		t.Errorf("error = %v, want ErrNoPendingEvent", err)
	}

	s.CurrentYear = 1825
	e.Check(s, l)
	if err := e.Resolve("flee", s, l); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("error = %v, want ErrUnknownChoice", err)
	}
}

func TestRepeatableEventCooldown(t *testing.T) {
	cat := eventCatalog(t)
	s := NewState(1800)
	l := NewLedger(cat)
	e := NewEvents(cat)
	if err := l.SetValue("labor", 150); err != nil {
		t.Fatal(err)
	}

	ev := e.Check(s, l)
	if ev == nil || ev.ID != "labor_surplus" {
		t.Fatalf("Check = %v, want labor_surplus", ev)
	}
	if err := e.Resolve("hire", s, l); err != nil {
		t.Fatal(err)
	}

	// Still above threshold, but cooling down.
	if again := e.Check(s, l); again != nil {
		t.Errorf("event %q refired during cooldown", again.ID)
	}

	e.Tick(31)
	if again := e.Check(s, l); again == nil || again.ID != "labor_surplus" {
		t.Errorf("repeatable event did not refire after cooldown, got %v", again)
	}
}
