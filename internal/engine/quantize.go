package engine

import "math"

// PriceToAnchor converts a price's deviation from its reference open into an
// unclamped MIDI target. Rounding is trend-aware: up while the price rises,
// down while it falls, to nearest when flat or when the previous price is
// unknown. Round-to-nearest alone leaves dead zones where the price moves but
// the quantized pitch does not; ceil-on-rise / floor-on-fall keeps the pitch
// monotone with the price inside a step boundary.
//
// The result is intentionally not clamped to any playable range; range
// enforcement happens in pool construction so the raw target stays
// informative when the price has drifted outside the audible window.
func PriceToAnchor(price, openPrice float64, baseMidi int, stepPct float64, prevPrice *float64) int {
	deltaPct := (price - openPrice) / openPrice
	rawSemitones := deltaPct / stepPct

	var semitones int
	switch {
	case prevPrice != nil && price > *prevPrice:
		semitones = int(math.Ceil(rawSemitones))
	case prevPrice != nil && price < *prevPrice:
		semitones = int(math.Floor(rawSemitones))
	default:
		semitones = int(math.Round(rawSemitones))
	}

	return baseMidi + semitones
}

// RangeBounds constrains where a dynamic pitch window may sit.
type RangeBounds struct {
	CenterLo, CenterHi int // where the window center may land
	AbsLo, AbsHi       int // hard limits for the window edges
}

// WindowRange re-centers a voice's selectable pitch window on the anchor.
// Recomputing this each tick from the tick-start price keeps the window
// following the price instead of freezing at its edge once the price drifts
// permanently away from the open.
func WindowRange(anchor, halfRange int, b RangeBounds) (center, lo, hi int) {
	center = anchor
	if center < b.CenterLo {
		center = b.CenterLo
	}
	if center > b.CenterHi {
		center = b.CenterHi
	}
	lo = center - halfRange
	if lo < b.AbsLo {
		lo = b.AbsLo
	}
	hi = center + halfRange
	if hi > b.AbsHi {
		hi = b.AbsHi
	}
	return center, lo, hi
}

// NotePrice inverts the quantization mapping: it projects a pitch's offset
// from the window center back into a synthetic price near the tick-start
// price, so clients can draw notes on the price chart.
func NotePrice(note, center int, startPrice, stepPct float64) float64 {
	return startPrice * (1 + float64(note-center)*stepPct)
}
