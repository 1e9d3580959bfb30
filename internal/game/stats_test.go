package game

import (
	"reflect"
	"sort"
	"testing"
)

func TestStatusClassification(t *testing.T) {
	cat := testCatalog(t)
	s := NewState(1800)
	l := NewLedger(cat)
	if err := l.SetValue("capital", 100); err != nil {
		t.Fatal(err)
	}

	s.Owned["steam_engine"] = true
	s.SelectedExclusive["power"] = "steam_engine"

	cases := []struct {
		id   string
		want UpgradeStatus
	}{
		{"difference_engine", StatusUnknown},
		{"steam_engine", StatusOwned},
		{"telegraph", StatusLockedYear},
		{"water_wheel", StatusExclusiveBlocked},
		{"power_loom", StatusRequirementsNotMet},
		{"joint_venture", StatusRequirementsNotMet},
		{"spinning_jenny", StatusAvailable},
	}

	for _, tc := range cases {
		if got := Status(cat, s, l, tc.id); got != tc.want {
			t.Errorf("Status(%s) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestStatusCannotAfford(t *testing.T) {
	cat := testCatalog(t)
	s := NewState(1800)
	l := NewLedger(cat)
	// Starting capital is 10; spinning_jenny costs 50.

	if got := Status(cat, s, l, "spinning_jenny"); got != StatusCannotAfford {
		t.Errorf("Status = %s, want %s", got, StatusCannotAfford)
	}
}

func TestBlockingRequirements(t *testing.T) {
	cat := testCatalog(t)
	s := NewState(1800)

	got := BlockingRequirements(cat, s, "joint_venture")
	sort.Strings(got)
	want := []string{"power_loom", "spinning_jenny"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BlockingRequirements = %v, want %v", got, want)
	}

	// An unsatisfied OR-term lists every unowned alternative.
	got = BlockingRequirements(cat, s, "telegraph")
	sort.Strings(got)
	want = []string{"steam_engine", "water_wheel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BlockingRequirements(telegraph) = %v, want %v", got, want)
	}

	// A satisfied OR-term blocks nothing.
	s.Owned["water_wheel"] = true
	if got := BlockingRequirements(cat, s, "telegraph"); len(got) != 0 {
		t.Errorf("BlockingRequirements with OR satisfied = %v, want empty", got)
	}
}

func TestStats(t *testing.T) {
	cat := testCatalog(t)
	s := NewState(1800)
	s.Owned["spinning_jenny"] = true

	stats := Stats(cat, s)

	if stats.TotalUpgrades != 7 {
		t.Errorf("TotalUpgrades = %d, want 7", stats.TotalUpgrades)
	}
	if stats.OwnedUpgrades != 1 {
		t.Errorf("OwnedUpgrades = %d, want 1", stats.OwnedUpgrades)
	}
	// Owning spinning_jenny opens power_loom; telegraph stays year-locked
	// and joint_venture still needs power_loom.
	if stats.AvailableUpgrades != 4 {
		t.Errorf("AvailableUpgrades = %d, want 4", stats.AvailableUpgrades)
	}
	if !stats.HasNextUnlock || stats.NextUnlockYear != 1830 {
		t.Errorf("NextUnlockYear = %d (has=%v), want 1830", stats.NextUnlockYear, stats.HasNextUnlock)
	}

	industry := stats.TreeStatistics["industry"]
	if industry.Total != 6 || industry.Owned != 1 {
		t.Errorf("industry stats = %+v, want 1/6 owned", industry)
	}
}

func TestNextUnlockYearNone(t *testing.T) {
	cat := testCatalog(t)
	s := NewState(1900)

	if _, ok := NextUnlockYear(cat, s); ok {
		t.Error("no future unlocks expected past every year gate")
	}
}

func TestUpgradesByYear(t *testing.T) {
	cat := testCatalog(t)
	s := NewState(1800)

	locked := UpgradesByYear(cat, s)
	if len(locked) != 1 {
		t.Fatalf("locked years = %v, want exactly one", locked)
	}
	if got := locked[1830]; len(got) != 1 || got[0] != "telegraph" {
		t.Errorf("locked[1830] = %v, want [telegraph]", got)
	}
}
