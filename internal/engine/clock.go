package engine

// StepsPerBar is the length of the harmonic cycle in sub-steps.
const StepsPerBar = 16

// HarmonicClock is a modulo-16 step counter driving chord-progression lookup.
type HarmonicClock struct {
	step int
}

// Tick advances the clock one sub-step and returns the new step.
func (c *HarmonicClock) Tick() int {
	c.step = (c.step + 1) % StepsPerBar
	return c.step
}

// Step returns the current step without advancing.
func (c *HarmonicClock) Step() int {
	return c.step
}
