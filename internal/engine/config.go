package engine

// ConfigSnapshot is a point-in-time view of the engine's tunable parameters,
// echoed back to clients after a configuration update.
type ConfigSnapshot struct {
	Sensitivity   float64 `json:"sensitivity"`
	FastStepPct   float64 `json:"fast_step_pct"`
	SlowStepPct   float64 `json:"slow_step_pct"`
	PriceNoise    float64 `json:"price_noise"`
	SopranoRhythm int     `json:"soprano_rhythm"`
}

// SetSensitivity clamps the multiplier to [0.1, 10.0] and rescales both
// quantization step percentages inversely, so higher sensitivity maps smaller
// price moves onto whole semitones. Returns the resolved value.
func (e *Engine) SetSensitivity(multiplier float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	safe := clampFloat(multiplier, 0.1, 10.0)
	e.sensitivity = safe
	e.fastStepPct = e.baseFastStepPct / safe
	e.slowStepPct = e.baseSlowStepPct / safe
	return safe
}

// SetPriceNoise clamps the noise multiplier to [0.1, 5.0] and returns the
// resolved value.
func (e *Engine) SetPriceNoise(multiplier float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.priceNoise = clampFloat(multiplier, 0.1, 5.0)
	return e.priceNoise
}

// SetSopranoRhythm sets the soprano update resolution: 4 = quarter notes,
// 8 = eighth notes, 16 = sixteenth notes. Any other value is ignored and the
// prior setting kept. Returns the resolved value.
func (e *Engine) SetSopranoRhythm(rhythm int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch rhythm {
	case 4, 8, 16:
		e.sopranoRhythm = rhythm
	}
	return e.sopranoRhythm
}

// Config returns the current resolved configuration.
func (e *Engine) Config() ConfigSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return ConfigSnapshot{
		Sensitivity:   e.sensitivity,
		FastStepPct:   e.fastStepPct,
		SlowStepPct:   e.slowStepPct,
		PriceNoise:    e.priceNoise,
		SopranoRhythm: e.sopranoRhythm,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
