package engine

import "math/rand"

// minPrice floors every simulated price; the quantizer divides by the open,
// so prices must stay strictly positive.
const minPrice = 0.01

// PriceSeries is one simulated instrument's bounded random walk. Advance is
// called once per tick; sub-step prices come from interpolation plus jitter
// in the assembler, which keeps paths smooth at sub-step granularity but
// unpredictable tick to tick.
type PriceSeries struct {
	Current  float64
	Open     float64 // reference for quantization, fixed for the process lifetime
	WalkStep float64 // base per-tick noise amplitude
	Drift    float64 // deterministic per-tick drift
}

// Advance draws the next tick-end price: uniform noise scaled by the noise
// multiplier, plus drift, floored at minPrice.
func (s *PriceSeries) Advance(rng *rand.Rand, noiseMultiplier float64) float64 {
	noise := s.WalkStep * noiseMultiplier
	next := s.Current + uniform(rng, -noise, noise) + s.Drift
	if next < minPrice {
		next = minPrice
	}
	s.Current = next
	return next
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
