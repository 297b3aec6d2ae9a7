package domain

import "github.com/shopspring/decimal"

// SubSteps is the number of sub-steps packed into one streamed bundle.
const SubSteps = 16

// Bundle is one heartbeat's worth of generated music plus the price paths
// that produced it. It is immutable once returned by the engine; ownership
// passes to the scheduler for broadcast.
type Bundle struct {
	PayloadVersion string `json:"payload_version"`
	BuildID        string `json:"build_id"`

	Soprano []*int `json:"soprano_sequence"` // MIDI pitches, null = rest
	Bass    []*int `json:"bass_sequence"`

	FastPrices []float64 `json:"fast_price_sequence"`
	SlowPrices []float64 `json:"slow_price_sequence"`

	// Note prices map each emitted pitch back into a synthetic price so a
	// visual client can overlay notes on the price chart.
	FastNotePrices []float64  `json:"fast_note_price_sequence"`
	SlowNotePrices []*float64 `json:"slow_note_price_sequence"`

	RVol        float64 `json:"rvol"`
	Regime      Regime  `json:"regime"`
	Divergence  bool    `json:"divergence"`
	ChordDegree int     `json:"chord_degree"`
	RootOffset  int     `json:"root_offset"`

	StartTick int64 `json:"start_tick"`
	TickCount int64 `json:"tick_count"`

	// Rounded tick-end prices
	FastPrice float64 `json:"fast_price"`
	SlowPrice float64 `json:"slow_price"`
}

// RoundPrice rounds a price to the given number of decimal places for the
// wire payload. Goes through decimal to avoid float formatting artifacts.
func RoundPrice(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
