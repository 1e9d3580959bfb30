package game

import "testing"

func newTestClock() *Clock {
	// 0.1 years per second, speeds 0.25..16, quarter-second step bound.
	return NewClock(1800, 0.1, 0.25, 16, 0.25)
}

func TestClockAccumulatesProgress(t *testing.T) {
	c := newTestClock()

	c.Advance(5) // half a year
	if c.Year != 1800 {
		t.Errorf("year = %d, want 1800 before a full year elapses", c.Year)
	}
	if !almostEqual(c.Progress, 0.5) {
		t.Errorf("progress = %v, want 0.5", c.Progress)
	}
}

func TestClockFiresYearListenersInOrder(t *testing.T) {
	c := newTestClock()

	var years []int
	c.OnYearChange(func(year int) { years = append(years, year) })

	c.Advance(35) // 3.5 years
	if c.Year != 1803 {
		t.Fatalf("year = %d, want 1803", c.Year)
	}
	if len(years) != 3 || years[0] != 1801 || years[1] != 1802 || years[2] != 1803 {
		t.Errorf("listener years = %v, want [1801 1802 1803]", years)
	}
}

func TestClockStepBoundsDelta(t *testing.T) {
	c := newTestClock()

	// A huge catch-up delta is clamped to MaxStep before scaling, so a
	// single call can never jump over intermediate years.
	if got := c.Step(60); !almostEqual(got, 0.25) {
		t.Errorf("Step(60) = %v, want clamp at 0.25", got)
	}
	if got := c.Step(0.1); !almostEqual(got, 0.1) {
		t.Errorf("Step(0.1) = %v, want 0.1", got)
	}
	if got := c.Step(-1); got != 0 {
		t.Errorf("Step(-1) = %v, want 0", got)
	}
}

func TestClockPause(t *testing.T) {
	c := newTestClock()

	if paused := c.TogglePause(); !paused {
		t.Fatal("first toggle should pause")
	}
	if got := c.EffectiveScale(); got != 0 {
		t.Errorf("paused scale = %v, want 0", got)
	}
	if got := c.Step(1); got != 0 {
		t.Errorf("paused Step = %v, want 0", got)
	}

	if paused := c.TogglePause(); paused {
		t.Fatal("second toggle should resume")
	}
	if got := c.EffectiveScale(); !almostEqual(got, 1) {
		t.Errorf("resumed scale = %v, want 1", got)
	}
}

func TestClockSpeedClamped(t *testing.T) {
	c := newTestClock()

	c.SetSpeed(64)
	if !almostEqual(c.Multiplier, 16) {
		t.Errorf("multiplier = %v, want clamp at 16", c.Multiplier)
	}

	c.SetSpeed(0.01)
	if !almostEqual(c.Multiplier, 0.25) {
		t.Errorf("multiplier = %v, want clamp at 0.25", c.Multiplier)
	}

	c.SetSpeed(2)
	if got := c.Step(0.1); !almostEqual(got, 0.2) {
		t.Errorf("Step at 2x = %v, want 0.2", got)
	}
}

func TestClockSkipToFiresEachYear(t *testing.T) {
	c := newTestClock()
	c.Progress = 0.7

	var years []int
	c.OnYearChange(func(year int) { years = append(years, year) })

	c.SkipTo(1803)
	if c.Year != 1803 {
		t.Errorf("year = %d, want 1803", c.Year)
	}
	if c.Progress != 0 {
		t.Errorf("progress = %v, want reset to 0", c.Progress)
	}
	if len(years) != 3 {
		t.Errorf("listener fired %d times, want 3", len(years))
	}
}
