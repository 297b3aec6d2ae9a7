package engine

import (
	"math"
	"testing"
)

func TestPriceToAnchor(t *testing.T) {
	const (
		open    = 100.0
		base    = 72
		stepPct = 0.001
	)

	t.Run("No Previous Price Rounds To Nearest", func(t *testing.T) {
		// +0.24% = 2.4 semitones
		if got := PriceToAnchor(100.24, open, base, stepPct, nil); got != base+2 {
			t.Errorf("expected %d, got %d", base+2, got)
		}
	})

	t.Run("Rising Price Rounds Up", func(t *testing.T) {
		prev := 100.0
		if got := PriceToAnchor(100.24, open, base, stepPct, &prev); got != base+3 {
			t.Errorf("expected ceil to %d, got %d", base+3, got)
		}
	})

	t.Run("Falling Price Rounds Down", func(t *testing.T) {
		prev := 100.30
		if got := PriceToAnchor(100.26, open, base, stepPct, &prev); got != base+2 {
			t.Errorf("expected floor to %d, got %d", base+2, got)
		}
	})

	t.Run("Flat Price Rounds To Nearest", func(t *testing.T) {
		prev := 100.24
		if got := PriceToAnchor(100.24, open, base, stepPct, &prev); got != base+2 {
			t.Errorf("expected %d, got %d", base+2, got)
		}
	})

	t.Run("Unclamped Below And Above Register", func(t *testing.T) {
		if got := PriceToAnchor(110.0, open, base, stepPct, nil); got != base+100 {
			t.Errorf("expected unclamped %d, got %d", base+100, got)
		}
		if got := PriceToAnchor(90.0, open, base, stepPct, nil); got != base-100 {
			t.Errorf("expected unclamped %d, got %d", base-100, got)
		}
	})

	t.Run("Ceil Dominance On Rises", func(t *testing.T) {
		prev := open
		for _, price := range []float64{100.01, 100.07, 100.12, 100.19, 100.25} {
			got := PriceToAnchor(price, open, base, stepPct, &prev)
			naive := base + int(math.Round((price-open)/open/stepPct))
			if got < naive {
				t.Errorf("price %.2f: trend-aware %d fell below naive %d", price, got, naive)
			}
			prev = price
		}
	})

	t.Run("Monotone Anchors On A Steady Climb", func(t *testing.T) {
		// +3 steps per tick must raise the anchor every tick
		last := PriceToAnchor(open, open, base, stepPct, nil)
		prev := open
		for k := 1; k <= 4; k++ {
			price := open * (1 + 3*float64(k)*stepPct)
			got := PriceToAnchor(price, open, base, stepPct, &prev)
			if got <= last {
				t.Fatalf("tick %d: anchor %d did not increase past %d", k, got, last)
			}
			last = got
			prev = price
		}
	})
}

func TestWindowRange(t *testing.T) {
	bounds := RangeBounds{CenterLo: 54, CenterHi: 96, AbsLo: 36, AbsHi: 108}

	t.Run("Anchor Inside Bounds", func(t *testing.T) {
		center, lo, hi := WindowRange(70, 12, bounds)
		if center != 70 || lo != 58 || hi != 82 {
			t.Errorf("expected (70, 58, 82), got (%d, %d, %d)", center, lo, hi)
		}
	})

	t.Run("Anchor Above Center Bound", func(t *testing.T) {
		center, lo, hi := WindowRange(120, 12, bounds)
		if center != 96 || lo != 84 || hi != 108 {
			t.Errorf("expected (96, 84, 108), got (%d, %d, %d)", center, lo, hi)
		}
	})

	t.Run("Anchor Below Center Bound", func(t *testing.T) {
		center, lo, hi := WindowRange(40, 12, bounds)
		if center != 54 || lo != 42 || hi != 66 {
			t.Errorf("expected (54, 42, 66), got (%d, %d, %d)", center, lo, hi)
		}
	})

	t.Run("Edges Respect Absolute Bounds", func(t *testing.T) {
		_, lo, hi := WindowRange(96, 20, bounds)
		if lo < bounds.AbsLo || hi > bounds.AbsHi {
			t.Errorf("window [%d, %d] escaped absolute bounds", lo, hi)
		}
	})
}

func TestNotePrice(t *testing.T) {
	t.Run("Center Maps To Start Price", func(t *testing.T) {
		if got := NotePrice(72, 72, 100.0, 0.001); got != 100.0 {
			t.Errorf("expected 100.0, got %f", got)
		}
	})

	t.Run("Offsets Scale By Step Percentage", func(t *testing.T) {
		if got := NotePrice(82, 72, 100.0, 0.001); math.Abs(got-101.0) > 1e-9 {
			t.Errorf("expected 101.0, got %f", got)
		}
		if got := NotePrice(62, 72, 100.0, 0.001); math.Abs(got-99.0) > 1e-9 {
			t.Errorf("expected 99.0, got %f", got)
		}
	})
}
