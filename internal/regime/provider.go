package regime

import "invention_go/internal/domain"

// Clock is the clock-threshold policy: MAJOR for the first half of the bar,
// MINOR for the second. It is a placeholder until a market-regime signal is
// wired, but any replacement must stay a pure function of the step.
type Clock struct{}

// Regime implements domain.RegimeProvider.
func (Clock) Regime(step int) domain.Regime {
	if ((step%16)+16)%16 < 8 {
		return domain.RegimeMajor
	}
	return domain.RegimeMinor
}

// Locked pins the regime to a single mode regardless of the clock.
type Locked struct {
	Mode domain.Regime
}

// Regime implements domain.RegimeProvider.
func (l Locked) Regime(int) domain.Regime {
	return l.Mode
}

// FromConfig builds a provider from configuration. Mode "clock" selects the
// clock-threshold policy; "locked" (and anything unrecognized) pins the
// given regime, defaulting to MAJOR.
func FromConfig(mode string, lock domain.Regime) domain.RegimeProvider {
	switch mode {
	case "clock":
		return Clock{}
	default:
		if lock != domain.RegimeMajor && lock != domain.RegimeMinor {
			lock = domain.RegimeMajor
		}
		return Locked{Mode: lock}
	}
}
