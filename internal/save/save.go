// Package save persists and restores sessions. Modifier totals are never
// written: a load always re-derives them from the owned set, so a save
// file can never desync modifiers from ownership.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/napolitain/eras/internal/game"
)

// Version is the current save format version
const Version = 1

// ErrIncompatibleSave means the file was written by a newer format than
// this build understands.
var ErrIncompatibleSave = errors.New("incompatible save version")

type fileJSON struct {
	Version           int                `json:"version"`
	Timestamp         string             `json:"timestamp"`
	Resources         map[string]float64 `json:"resources"`
	OwnedUpgrades     []string           `json:"owned_upgrades"`
	SelectedExclusive map[string]string  `json:"selected_exclusive"`
	CurrentYear       int                `json:"current_year"`
}

// Write saves the session to path
func Write(path string, s *game.Session) error {
	file := fileJSON{
		Version:           Version,
		Timestamp:         time.Now().Format(time.RFC3339),
		Resources:         make(map[string]float64),
		OwnedUpgrades:     s.State.OwnedIDs(),
		SelectedExclusive: make(map[string]string),
		CurrentYear:       s.State.CurrentYear,
	}
	for _, id := range s.Ledger.ResourceIDs() {
		value, err := s.Ledger.Value(id)
		if err != nil {
			return err
		}
		file.Resources[id] = value
	}
	for group, id := range s.State.SelectedExclusive {
		file.SelectedExclusive[group] = id
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Read restores a saved session into s. Every id is validated against the
// session's catalog before anything is applied, so a bad file leaves the
// session untouched. Production modifiers are recomputed from the
// restored owned set, never read from the file.
func Read(path string, s *game.Session) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read save: %w", err)
	}

	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse save %s: %w", path, err)
	}

	// Version 0 predates the field; treat as version 1.
	if file.Version > Version {
		return fmt.Errorf("%w: %d (supported up to %d)", ErrIncompatibleSave, file.Version, Version)
	}

	for id := range file.Resources {
		if _, ok := s.Catalog.Resource(id); !ok {
			return fmt.Errorf("save references %w: %q", game.ErrUnknownResource, id)
		}
	}
	for _, id := range file.OwnedUpgrades {
		if _, ok := s.Catalog.Upgrade(id); !ok {
			return fmt.Errorf("save references %w: %q", game.ErrUnknownUpgrade, id)
		}
	}
	for group, id := range file.SelectedExclusive {
		u, ok := s.Catalog.Upgrade(id)
		if !ok {
			return fmt.Errorf("save references %w: %q", game.ErrUnknownUpgrade, id)
		}
		if u.ExclusiveGroup != group {
			return fmt.Errorf("save maps group %q to %q which belongs to group %q", group, id, u.ExclusiveGroup)
		}
	}

	s.State.Reset(file.CurrentYear)
	for _, id := range file.OwnedUpgrades {
		s.State.Owned[id] = true
	}
	for group, id := range file.SelectedExclusive {
		s.State.SelectedExclusive[group] = id
	}

	s.Ledger.ResetValues()
	for id, value := range file.Resources {
		if err := s.Ledger.SetValue(id, value); err != nil {
			return err
		}
	}
	s.Ledger.RecomputeModifiers(s.State.Owned, s.Catalog)

	s.Clock.Reset(file.CurrentYear)
	s.Clock.SetSpeed(s.Config.DefaultSpeed)
	s.Events.Reset()

	return nil
}
