package game

import (
	"testing"

	"github.com/napolitain/eras/internal/catalog"
	"github.com/napolitain/eras/internal/config"
)

// testCatalog builds a small industrial-era catalog exercising every
// requirement shape: empty, AND, OR, year gates and an exclusive group.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	resources := map[string]*catalog.ResourceDefinition{
		"capital": {
			ID:             "capital",
			Name:           "Capital",
			BaseProduction: 1.0,
			MinValue:       0,
		},
		"knowledge": {
			ID:             "knowledge",
			Name:           "Knowledge",
			BaseProduction: 0.5,
			MinValue:       0,
		},
		"labor": {
			ID:             "labor",
			Name:           "Labor",
			BaseProduction: 2.0,
			MinValue:       0,
		},
	}

	trees := map[string]*catalog.UpgradeTree{
		"industry": {ID: "industry", Name: "Industry"},
		"science":  {ID: "science", Name: "Science"},
	}

	upgrades := map[string]*catalog.Upgrade{
		"spinning_jenny": {
			ID:      "spinning_jenny",
			Tree:    "industry",
			Name:    "Spinning Jenny",
			Cost:    []catalog.ResourceCost{{Resource: "capital", Amount: 50}},
			Effects: []catalog.Effect{{Resource: "capital", Kind: catalog.EffectAdd, Value: 2}},
		},
		"power_loom": {
			ID:       "power_loom",
			Tree:     "industry",
			Name:     "Power Loom",
			Tier:     1,
			Cost:     []catalog.ResourceCost{{Resource: "capital", Amount: 100}},
			Effects:  []catalog.Effect{{Resource: "capital", Kind: catalog.EffectMult, Value: 2}},
			Requires: []catalog.Requirement{{Upgrade: "spinning_jenny"}},
		},
		"steam_engine": {
			ID:             "steam_engine",
			Tree:           "industry",
			Name:           "Steam Engine",
			Cost:           []catalog.ResourceCost{{Resource: "capital", Amount: 80}},
			Effects:        []catalog.Effect{{Resource: "capital", Kind: catalog.EffectMult, Value: 1.5}},
			ExclusiveGroup: "power",
		},
		"water_wheel": {
			ID:             "water_wheel",
			Tree:           "industry",
			Name:           "Water Wheel",
			Cost:           []catalog.ResourceCost{{Resource: "capital", Amount: 60}},
			Effects:        []catalog.Effect{{Resource: "capital", Kind: catalog.EffectAdd, Value: 1}},
			ExclusiveGroup: "power",
		},
		"telegraph": {
			ID:       "telegraph",
			Tree:     "science",
			Name:     "Telegraph",
			Year:     1830,
			Cost:     []catalog.ResourceCost{{Resource: "knowledge", Amount: 20}},
			Requires: []catalog.Requirement{{AnyOf: []string{"steam_engine", "water_wheel"}}},
		},
		"factory_acts": {
			ID:      "factory_acts",
			Tree:    "industry",
			Name:    "Factory Acts",
			Cost:    []catalog.ResourceCost{{Resource: "capital", Amount: 10}},
			Effects: []catalog.Effect{{Resource: "capital", Kind: catalog.EffectAdd, Value: -5}},
		},
		"joint_venture": {
			ID:   "joint_venture",
			Tree: "industry",
			Name: "Joint Venture",
			Cost: []catalog.ResourceCost{
				{Resource: "labor", Amount: 5},
				{Resource: "capital", Amount: 1000},
			},
			Requires: []catalog.Requirement{
				{Upgrade: "spinning_jenny"},
				{Upgrade: "power_loom"},
			},
		},
	}

	cat, err := catalog.New(resources, trees, upgrades, nil)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return cat
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.StartYear = 1800
	return cfg
}

// mustValue reads a resource value or fails the test
func mustValue(t *testing.T, l *Ledger, id string) float64 {
	t.Helper()
	value, err := l.Value(id)
	if err != nil {
		t.Fatalf("failed to read resource %q: %v", id, err)
	}
	return value
}

// mustRate reads a production rate or fails the test
func mustRate(t *testing.T, l *Ledger, id string) float64 {
	t.Helper()
	rate, err := l.Rate(id)
	if err != nil {
		t.Fatalf("failed to read rate of %q: %v", id, err)
	}
	return rate
}

func almostEqual(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}
