package catalog

import "sort"

// EffectKind selects how an effect modifies a resource's production rate
type EffectKind string

const (
	EffectAdd  EffectKind = "add"  // flat bonus, summed before scaling
	EffectMult EffectKind = "mult" // scaling factor, applied after all additions
)

// ResourceDefinition defines a resource type available in the game.
// Definitions are immutable after the catalog is loaded.
type ResourceDefinition struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	Color          [3]int
	BaseProduction float64 // units per second before any modifiers
	MinValue       float64 // floor the current value never drops below
}

// ResourceCost is a single resource cost for an upgrade or event choice
type ResourceCost struct {
	Resource string
	Amount   float64
}

// Effect is a single production modifier an upgrade applies to a resource
type Effect struct {
	Resource string
	Kind     EffectKind
	Value    float64
}

// Requirement is one term of an upgrade's requirement expression.
// Either Upgrade is set (the id must be owned) or AnyOf is set (at least
// one of the ids must be owned). The expression is the AND of its terms.
type Requirement struct {
	Upgrade string
	AnyOf   []string
}

// IsAnyOf reports whether this term is an OR-set of alternatives
func (r Requirement) IsAnyOf() bool {
	return len(r.AnyOf) > 0
}

// Upgrade is a purchasable upgrade with costs, effects and prerequisites
type Upgrade struct {
	ID             string
	Tree           string
	Name           string
	Description    string
	Tier           int // layout/ordering hint, not a gate
	Year           int // earliest year the upgrade can be purchased
	Cost           []ResourceCost
	Effects        []Effect
	ExclusiveGroup string // at most one upgrade per group may ever be owned
	Requires       []Requirement
}

// UpgradeTree is a named collection of related upgrades
type UpgradeTree struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Upgrades    map[string]*Upgrade
}

// EventTriggerKind selects what condition fires an event
type EventTriggerKind string

const (
	TriggerYear     EventTriggerKind = "year"     // current year reached Year
	TriggerUpgrades EventTriggerKind = "upgrades" // all of Upgrades are owned
	TriggerResource EventTriggerKind = "resource" // resource value crosses Threshold
)

// EventTrigger is one condition that can fire an event
type EventTrigger struct {
	Kind       EventTriggerKind
	Year       int
	Upgrades   []string
	Resource   string
	Threshold  float64
	Comparison string // ">=", "<=", ">", "<", "=="
}

// EventChoice is one option the player can pick in response to an event
type EventChoice struct {
	ID          string
	Text        string
	Description string
	Cost        []ResourceCost
	Effects     []Effect // applied once to current values, not to modifiers
	Requires    []string // upgrade ids that must be owned to pick this choice
}

// Event is a game event that pauses for a player decision
type Event struct {
	ID          string
	Title       string
	Description string
	Icon        string
	OneTime     bool
	Cooldown    float64 // minimum seconds between repeat triggers
	Triggers    []EventTrigger
	Choices     []EventChoice
}

// Catalog is the validated, immutable set of definitions a session runs on
type Catalog struct {
	Resources map[string]*ResourceDefinition
	Trees     map[string]*UpgradeTree
	Upgrades  map[string]*Upgrade
	Events    map[string]*Event
}

// Resource looks up a resource definition by id
func (c *Catalog) Resource(id string) (*ResourceDefinition, bool) {
	r, ok := c.Resources[id]
	return r, ok
}

// Upgrade looks up an upgrade by id across all trees
func (c *Catalog) Upgrade(id string) (*Upgrade, bool) {
	u, ok := c.Upgrades[id]
	return u, ok
}

// ResourceIDs returns all resource ids in deterministic order
func (c *Catalog) ResourceIDs() []string {
	ids := make([]string, 0, len(c.Resources))
	for id := range c.Resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UpgradeIDs returns all upgrade ids in deterministic order
func (c *Catalog) UpgradeIDs() []string {
	ids := make([]string, 0, len(c.Upgrades))
	for id := range c.Upgrades {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TreeIDs returns all tree ids in deterministic order
func (c *Catalog) TreeIDs() []string {
	ids := make([]string, 0, len(c.Trees))
	for id := range c.Trees {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GroupMembers returns the ids of all upgrades in an exclusive group,
// in deterministic order
func (c *Catalog) GroupMembers(group string) []string {
	var ids []string
	for id, u := range c.Upgrades {
		if u.ExclusiveGroup == group {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
