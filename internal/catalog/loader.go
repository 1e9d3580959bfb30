package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMalformedCatalog is wrapped by every load-time validation failure.
// A failed load never returns a partially populated catalog.
var ErrMalformedCatalog = errors.New("malformed catalog")

// resourceJSON mirrors the on-disk shape of a resource definition
type resourceJSON struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Icon           string  `json:"icon"`
	Color          []int   `json:"color"`
	BaseProduction float64 `json:"base_production"`
	MinValue       float64 `json:"min_value"`
}

type resourcesFileJSON struct {
	Resources []resourceJSON `json:"resources"`
}

type costJSON struct {
	Resource string  `json:"resource"`
	Amount   float64 `json:"amount"`
}

type effectJSON struct {
	Resource string  `json:"resource"`
	Effect   string  `json:"effect"`
	Value    float64 `json:"value"`
}

// requirementJSON accepts either a bare id string (AND term) or an
// array of id strings (OR term)
type requirementJSON struct {
	Upgrade string
	AnyOf   []string
}

func (r *requirementJSON) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		r.Upgrade = single
		return nil
	}

	var set []string
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("requirement must be an id or an array of ids: %w", err)
	}
	r.AnyOf = set
	return nil
}

type upgradeJSON struct {
	ID             string            `json:"id"`
	Tree           string            `json:"tree"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Tier           int               `json:"tier"`
	Year           int               `json:"year"`
	Cost           []costJSON        `json:"cost"`
	Effects        []effectJSON      `json:"effects"`
	ExclusiveGroup string            `json:"exclusive_group"`
	Requires       []requirementJSON `json:"requires"`
}

type treeJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type upgradesFileJSON struct {
	Trees    []treeJSON    `json:"trees"`
	Upgrades []upgradeJSON `json:"upgrades"`
}

type triggerJSON struct {
	Kind       string   `json:"kind"`
	Year       int      `json:"year"`
	Upgrades   []string `json:"upgrades"`
	Resource   string   `json:"resource"`
	Threshold  float64  `json:"threshold"`
	Comparison string   `json:"comparison"`
}

type choiceJSON struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Description string       `json:"description"`
	Costs       []costJSON   `json:"costs"`
	Effects     []effectJSON `json:"effects"`
	Requires    []string     `json:"requirements"`
}

type eventJSON struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	OneTime     *bool         `json:"one_time"`
	Cooldown    float64       `json:"cooldown"`
	Triggers    []triggerJSON `json:"triggers"`
	Choices     []choiceJSON  `json:"choices"`
}

type eventsFileJSON struct {
	Events []eventJSON `json:"events"`
}

// Load reads resources.json, upgrades.json and (optionally) events.json
// from dataDir and returns a fully validated catalog. Loading is
// all-or-nothing: any validation failure returns a nil catalog and an
// error wrapping ErrMalformedCatalog.
func Load(dataDir string) (*Catalog, error) {
	resources, err := loadResources(filepath.Join(dataDir, "resources.json"))
	if err != nil {
		return nil, err
	}

	trees, upgrades, err := loadUpgrades(filepath.Join(dataDir, "upgrades.json"))
	if err != nil {
		return nil, err
	}

	events, err := loadEvents(filepath.Join(dataDir, "events.json"))
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Resources: resources,
		Trees:     trees,
		Upgrades:  upgrades,
		Events:    events,
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func loadResources(path string) (map[string]*ResourceDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var file resourcesFileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCatalog, filepath.Base(path), err)
	}

	resources := make(map[string]*ResourceDefinition)
	for _, raw := range file.Resources {
		if raw.ID == "" {
			return nil, fmt.Errorf("%w: resource with empty id", ErrMalformedCatalog)
		}
		if _, dup := resources[raw.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate resource id %q", ErrMalformedCatalog, raw.ID)
		}

		def := &ResourceDefinition{
			ID:             raw.ID,
			Name:           raw.Name,
			Description:    raw.Description,
			Icon:           raw.Icon,
			Color:          [3]int{255, 255, 255},
			BaseProduction: raw.BaseProduction,
			MinValue:       raw.MinValue,
		}
		if len(raw.Color) == 3 {
			def.Color = [3]int{raw.Color[0], raw.Color[1], raw.Color[2]}
		}
		resources[def.ID] = def
	}

	return resources, nil
}

func loadUpgrades(path string) (map[string]*UpgradeTree, map[string]*Upgrade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var file upgradesFileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrMalformedCatalog, filepath.Base(path), err)
	}

	trees := make(map[string]*UpgradeTree)
	for _, raw := range file.Trees {
		if raw.ID == "" {
			return nil, nil, fmt.Errorf("%w: tree with empty id", ErrMalformedCatalog)
		}
		if _, dup := trees[raw.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate tree id %q", ErrMalformedCatalog, raw.ID)
		}
		trees[raw.ID] = &UpgradeTree{
			ID:          raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
			Icon:        raw.Icon,
			Upgrades:    make(map[string]*Upgrade),
		}
	}

	upgrades := make(map[string]*Upgrade)
	for _, raw := range file.Upgrades {
		if raw.ID == "" {
			return nil, nil, fmt.Errorf("%w: upgrade with empty id", ErrMalformedCatalog)
		}
		if _, dup := upgrades[raw.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate upgrade id %q", ErrMalformedCatalog, raw.ID)
		}

		u := &Upgrade{
			ID:             raw.ID,
			Tree:           raw.Tree,
			Name:           raw.Name,
			Description:    raw.Description,
			Tier:           raw.Tier,
			Year:           raw.Year,
			ExclusiveGroup: raw.ExclusiveGroup,
		}
		for _, c := range raw.Cost {
			u.Cost = append(u.Cost, ResourceCost{Resource: c.Resource, Amount: c.Amount})
		}
		for _, e := range raw.Effects {
			u.Effects = append(u.Effects, Effect{Resource: e.Resource, Kind: EffectKind(e.Effect), Value: e.Value})
		}
		for _, r := range raw.Requires {
			u.Requires = append(u.Requires, Requirement{Upgrade: r.Upgrade, AnyOf: r.AnyOf})
		}

		upgrades[u.ID] = u
	}

	return trees, upgrades, nil
}

// loadEvents tolerates a missing events.json; events are optional content
func loadEvents(path string) (map[string]*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Event{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var file eventsFileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCatalog, filepath.Base(path), err)
	}

	events := make(map[string]*Event)
	for _, raw := range file.Events {
		if raw.ID == "" {
			return nil, fmt.Errorf("%w: event with empty id", ErrMalformedCatalog)
		}
		if _, dup := events[raw.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate event id %q", ErrMalformedCatalog, raw.ID)
		}

		ev := &Event{
			ID:          raw.ID,
			Title:       raw.Title,
			Description: raw.Description,
			Icon:        raw.Icon,
			OneTime:     true,
			Cooldown:    raw.Cooldown,
		}
		if raw.OneTime != nil {
			ev.OneTime = *raw.OneTime
		}
		for _, t := range raw.Triggers {
			trigger := EventTrigger{
				Kind:       EventTriggerKind(t.Kind),
				Year:       t.Year,
				Upgrades:   t.Upgrades,
				Resource:   t.Resource,
				Threshold:  t.Threshold,
				Comparison: t.Comparison,
			}
			if trigger.Kind == TriggerResource && trigger.Comparison == "" {
				trigger.Comparison = ">="
			}
			ev.Triggers = append(ev.Triggers, trigger)
		}
		for _, ch := range raw.Choices {
			choice := EventChoice{
				ID:          ch.ID,
				Text:        ch.Text,
				Description: ch.Description,
				Requires:    ch.Requires,
			}
			for _, c := range ch.Costs {
				choice.Cost = append(choice.Cost, ResourceCost{Resource: c.Resource, Amount: c.Amount})
			}
			for _, e := range ch.Effects {
				choice.Effects = append(choice.Effects, Effect{Resource: e.Resource, Kind: EffectKind(e.Effect), Value: e.Value})
			}
			ev.Choices = append(ev.Choices, choice)
		}

		events[ev.ID] = ev
	}

	return events, nil
}
