package catalog

import "fmt"

// New builds a validated catalog from already-parsed definitions. Tree
// membership maps are populated here; callers only need to set each
// upgrade's Tree id.
func New(resources map[string]*ResourceDefinition, trees map[string]*UpgradeTree, upgrades map[string]*Upgrade, events map[string]*Event) (*Catalog, error) {
	if events == nil {
		events = map[string]*Event{}
	}
	for _, tree := range trees {
		if tree.Upgrades == nil {
			tree.Upgrades = make(map[string]*Upgrade)
		}
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

// validate cross-checks every reference in the catalog. It runs once at
// load time; a catalog that passes is safe to index without further
// existence checks.
func (c *Catalog) validate() error {
	for _, id := range c.ResourceIDs() {
		def := c.Resources[id]
		if def.BaseProduction < 0 && def.MinValue > 0 {
			return fmt.Errorf("%w: resource %q has negative base production above a positive floor", ErrMalformedCatalog, id)
		}
	}

	for _, id := range c.UpgradeIDs() {
		u := c.Upgrades[id]

		tree, ok := c.Trees[u.Tree]
		if !ok {
			return fmt.Errorf("%w: upgrade %q references unknown tree %q", ErrMalformedCatalog, id, u.Tree)
		}
		tree.Upgrades[id] = u

		if u.Tier < 0 {
			return fmt.Errorf("%w: upgrade %q has negative tier %d", ErrMalformedCatalog, id, u.Tier)
		}

		for _, cost := range u.Cost {
			if _, ok := c.Resources[cost.Resource]; !ok {
				return fmt.Errorf("%w: upgrade %q cost references unknown resource %q", ErrMalformedCatalog, id, cost.Resource)
			}
			if cost.Amount < 0 {
				return fmt.Errorf("%w: upgrade %q has negative cost for %q", ErrMalformedCatalog, id, cost.Resource)
			}
		}

		for _, eff := range u.Effects {
			if _, ok := c.Resources[eff.Resource]; !ok {
				return fmt.Errorf("%w: upgrade %q effect references unknown resource %q", ErrMalformedCatalog, id, eff.Resource)
			}
			if eff.Kind != EffectAdd && eff.Kind != EffectMult {
				return fmt.Errorf("%w: upgrade %q has unknown effect kind %q", ErrMalformedCatalog, id, eff.Kind)
			}
		}

		for _, req := range u.Requires {
			if req.IsAnyOf() {
				// A dangling id inside an OR-set is rejected too, not
				// silently skipped at evaluation time.
				for _, alt := range req.AnyOf {
					if _, ok := c.Upgrades[alt]; !ok {
						return fmt.Errorf("%w: upgrade %q requires unknown upgrade %q", ErrMalformedCatalog, id, alt)
					}
				}
				continue
			}
			if _, ok := c.Upgrades[req.Upgrade]; !ok {
				return fmt.Errorf("%w: upgrade %q requires unknown upgrade %q", ErrMalformedCatalog, id, req.Upgrade)
			}
		}
	}

	for evID, ev := range c.Events {
		for _, t := range ev.Triggers {
			switch t.Kind {
			case TriggerYear:
			case TriggerUpgrades:
				for _, uid := range t.Upgrades {
					if _, ok := c.Upgrades[uid]; !ok {
						return fmt.Errorf("%w: event %q trigger references unknown upgrade %q", ErrMalformedCatalog, evID, uid)
					}
				}
			case TriggerResource:
				if _, ok := c.Resources[t.Resource]; !ok {
					return fmt.Errorf("%w: event %q trigger references unknown resource %q", ErrMalformedCatalog, evID, t.Resource)
				}
			default:
				return fmt.Errorf("%w: event %q has unknown trigger kind %q", ErrMalformedCatalog, evID, t.Kind)
			}
		}

		for _, ch := range ev.Choices {
			for _, cost := range ch.Cost {
				if _, ok := c.Resources[cost.Resource]; !ok {
					return fmt.Errorf("%w: event %q choice %q cost references unknown resource %q", ErrMalformedCatalog, evID, ch.ID, cost.Resource)
				}
			}
			for _, eff := range ch.Effects {
				if _, ok := c.Resources[eff.Resource]; !ok {
					return fmt.Errorf("%w: event %q choice %q effect references unknown resource %q", ErrMalformedCatalog, evID, ch.ID, eff.Resource)
				}
				if eff.Kind != EffectAdd && eff.Kind != EffectMult {
					return fmt.Errorf("%w: event %q choice %q has unknown effect kind %q", ErrMalformedCatalog, evID, ch.ID, eff.Kind)
				}
			}
			for _, uid := range ch.Requires {
				if _, ok := c.Upgrades[uid]; !ok {
					return fmt.Errorf("%w: event %q choice %q requires unknown upgrade %q", ErrMalformedCatalog, evID, ch.ID, uid)
				}
			}
		}
	}

	return nil
}
