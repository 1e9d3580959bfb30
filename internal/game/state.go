package game

import "sort"

// State is the mutable ownership state of one session. Owned only grows
// within a session; it is reset only by starting a new session or loading
// a saved one.
type State struct {
	Owned             map[string]bool
	SelectedExclusive map[string]string // exclusive group -> chosen upgrade id
	CurrentYear       int
}

// NewState creates an empty state starting at the given year
func NewState(startYear int) *State {
	return &State{
		Owned:             make(map[string]bool),
		SelectedExclusive: make(map[string]string),
		CurrentYear:       startYear,
	}
}

// Owns reports whether an upgrade has been purchased this session
func (s *State) Owns(id string) bool {
	return s.Owned[id]
}

// OwnedIDs returns the owned upgrade ids in deterministic order
func (s *State) OwnedIDs() []string {
	ids := make([]string, 0, len(s.Owned))
	for id, has := range s.Owned {
		if has {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Reset clears ownership and exclusive selections and rewinds the year
func (s *State) Reset(startYear int) {
	s.Owned = make(map[string]bool)
	s.SelectedExclusive = make(map[string]string)
	s.CurrentYear = startYear
}
