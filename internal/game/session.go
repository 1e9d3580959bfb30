package game

import (
	"github.com/napolitain/eras/internal/catalog"
	"github.com/napolitain/eras/internal/config"
)

// Projecting sustainability for a time skip assumes this many wall-clock
// seconds of production per skipped year.
const skipSecondsPerYear = 2.0

// Session wires the catalog, ownership state, ledger, clock and events
// into one explicit context. All mutation goes through its methods, in
// the fixed tick order: clock advance, ledger growth, event checks, then
// at most one purchase per user action.
type Session struct {
	Catalog *catalog.Catalog
	Config  config.Config
	State   *State
	Ledger  *Ledger
	Clock   *Clock
	Events  *Events
}

// NewSession starts a fresh session over a validated catalog
func NewSession(cat *catalog.Catalog, cfg config.Config) *Session {
	s := &Session{
		Catalog: cat,
		Config:  cfg,
		State:   NewState(cfg.StartYear),
		Ledger:  NewLedger(cat),
		Clock:   NewClock(cfg.StartYear, cfg.YearsPerSecond, cfg.MinSpeed, cfg.MaxSpeed, cfg.MaxStepSeconds),
		Events:  NewEvents(cat),
	}
	s.Clock.SetSpeed(cfg.DefaultSpeed)
	s.Clock.OnYearChange(func(year int) {
		s.State.CurrentYear = year
	})
	return s
}

// Tick performs one simulation step for a wall-clock delta: bounded and
// speed-scaled time advances the clock and the ledger, then event
// triggers are checked. Returns the simulation seconds consumed.
func (s *Session) Tick(dt float64) float64 {
	scaled := s.Clock.Step(dt)
	if scaled > 0 {
		s.Clock.Advance(scaled)
		s.Ledger.Advance(scaled)
		s.Events.Tick(scaled)
	}
	s.Events.Check(s.State, s.Ledger)
	return scaled
}

// Purchase buys an upgrade through the transactional path
func (s *Session) Purchase(id string) error {
	return Purchase(s.Catalog, s.State, s.Ledger, id)
}

// Available reports current purchase eligibility of an upgrade
func (s *Session) Available(id string) bool {
	return Available(s.Catalog, s.State, id)
}

// ResolveEvent applies a choice of the pending event
func (s *Session) ResolveEvent(choiceID string) error {
	return s.Events.Resolve(choiceID, s.State, s.Ledger)
}

// CanTimeSkip reports whether skipping to targetYear keeps every resource
// at or above its floor, projecting production over the skipped span.
func (s *Session) CanTimeSkip(targetYear int) bool {
	if targetYear <= s.State.CurrentYear {
		return false
	}

	span := float64(targetYear-s.State.CurrentYear) * skipSecondsPerYear
	for _, id := range s.Ledger.ResourceIDs() {
		st, _ := s.Ledger.State(id)
		projected := st.Value + st.Rate()*span
		if projected < st.Definition.MinValue {
			return false
		}
	}
	return true
}

// TimeSkip jumps the session forward to targetYear, growing resources by
// the projected production and firing year listeners for each skipped
// year. Returns false when the skip would starve a resource.
func (s *Session) TimeSkip(targetYear int) bool {
	if !s.CanTimeSkip(targetYear) {
		return false
	}

	span := float64(targetYear-s.State.CurrentYear) * skipSecondsPerYear
	s.Ledger.Advance(span)
	s.Clock.SkipTo(targetYear)
	return true
}

// Reset rewinds the session to its initial conditions
func (s *Session) Reset() {
	s.State.Reset(s.Config.StartYear)
	s.Ledger.ResetValues()
	s.Ledger.RecomputeModifiers(s.State.Owned, s.Catalog)
	s.Clock.Reset(s.Config.StartYear)
	s.Clock.SetSpeed(s.Config.DefaultSpeed)
	s.Events.Reset()
}
