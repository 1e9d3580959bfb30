package game

// Clock drives in-game time: it accumulates progress toward the next year
// and scales wall-clock deltas by the configured speed. It is ticked only
// from the main simulation step, never concurrently with a purchase.
type Clock struct {
	Year           int
	Progress       float64 // 0..1 toward the next year
	YearsPerSecond float64
	Multiplier     float64
	Paused         bool

	// MaxStep bounds a single advance so one huge catch-up delta cannot
	// jump over intermediate year transitions.
	MaxStep float64

	minSpeed float64
	maxSpeed float64

	onYearChange []func(year int)
}

// NewClock creates a clock at startYear with the given base speed and
// multiplier bounds
func NewClock(startYear int, yearsPerSecond, minSpeed, maxSpeed, maxStep float64) *Clock {
	return &Clock{
		Year:           startYear,
		YearsPerSecond: yearsPerSecond,
		Multiplier:     1,
		MaxStep:        maxStep,
		minSpeed:       minSpeed,
		maxSpeed:       maxSpeed,
	}
}

// Step clamps a wall-clock delta to the per-call bound and scales it by
// the effective speed. The result is the simulation time the caller
// should advance the ledger by; zero while paused.
func (c *Clock) Step(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if c.MaxStep > 0 && dt > c.MaxStep {
		dt = c.MaxStep
	}
	return dt * c.EffectiveScale()
}

// Advance moves in-game time forward by an already-scaled delta, firing
// year listeners for every year boundary crossed in order.
func (c *Clock) Advance(scaled float64) {
	if scaled <= 0 {
		return
	}

	c.Progress += scaled * c.YearsPerSecond

	for c.Progress >= 1 {
		c.Progress -= 1
		c.Year++
		for _, fn := range c.onYearChange {
			fn(c.Year)
		}
	}
}

// EffectiveScale is the current time scale: 0 while paused, otherwise the
// speed multiplier
func (c *Clock) EffectiveScale() float64 {
	if c.Paused {
		return 0
	}
	return c.Multiplier
}

// SetSpeed clamps the multiplier to the configured bounds
func (c *Clock) SetSpeed(multiplier float64) {
	if multiplier < c.minSpeed {
		multiplier = c.minSpeed
	}
	if multiplier > c.maxSpeed {
		multiplier = c.maxSpeed
	}
	c.Multiplier = multiplier
}

// TogglePause flips the pause state and returns the new value
func (c *Clock) TogglePause() bool {
	c.Paused = !c.Paused
	return c.Paused
}

// OnYearChange registers a listener called once per year crossed
func (c *Clock) OnYearChange(fn func(year int)) {
	c.onYearChange = append(c.onYearChange, fn)
}

// ProgressPercent is the progress toward the next year as 0-100
func (c *Clock) ProgressPercent() float64 {
	return c.Progress * 100
}

// SkipTo jumps the clock to a later year, firing listeners for every
// skipped year. Callers validate the jump first (see Session.TimeSkip).
func (c *Clock) SkipTo(year int) {
	for c.Year < year {
		c.Year++
		for _, fn := range c.onYearChange {
			fn(c.Year)
		}
	}
	c.Progress = 0
}

// Reset rewinds the clock to a fresh session at startYear
func (c *Clock) Reset(startYear int) {
	c.Year = startYear
	c.Progress = 0
	c.Paused = false
	c.Multiplier = 1
}
