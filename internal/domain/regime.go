package domain

// Regime is the active diatonic scale mode.
type Regime string

const (
	RegimeMajor Regime = "MAJOR"
	RegimeMinor Regime = "MINOR"
)

var (
	majorIntervals = []int{0, 2, 4, 5, 7, 9, 11}
	minorIntervals = []int{0, 2, 3, 5, 7, 8, 10}
)

// Intervals returns the regime's 7-note scale interval set (semitone offsets
// from the root, mod 12). Unknown regimes fall back to MAJOR.
func (r Regime) Intervals() []int {
	if r == RegimeMinor {
		return minorIntervals
	}
	return majorIntervals
}

// Contains reports whether the pitch is scale-legal under this regime and root.
func (r Regime) Contains(pitch, root int) bool {
	pc := ((pitch-root)%12 + 12) % 12
	for _, iv := range r.Intervals() {
		if pc == iv {
			return true
		}
	}
	return false
}
