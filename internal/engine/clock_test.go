package engine

import "testing"

func TestHarmonicClock_Wraparound(t *testing.T) {
	clock := &HarmonicClock{}

	for i := 1; i < StepsPerBar; i++ {
		if got := clock.Tick(); got != i {
			t.Fatalf("tick %d: expected step %d, got %d", i, i, got)
		}
	}

	if got := clock.Tick(); got != 0 {
		t.Errorf("expected wraparound to 0, got %d", got)
	}
	if got := clock.Step(); got != 0 {
		t.Errorf("Step should not advance, got %d", got)
	}
}
