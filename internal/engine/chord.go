package engine

import "invention_go/internal/domain"

// chordProgressions holds one degree per clock step, so a full bar walks the
// whole 16-entry progression.
var chordProgressions = map[domain.Regime][StepsPerBar]int{
	domain.RegimeMajor: {
		1, 1, 4, 4,
		2, 2, 5, 5,
		6, 6, 4, 4,
		5, 5, 1, 1,
	},
	domain.RegimeMinor: {
		1, 1, 4, 4,
		6, 6, 2, 2,
		3, 3, 7, 7,
		5, 5, 1, 1,
	},
}

// chordMap maps a scale degree to its triad as semitone offsets from the
// root. Offsets above 11 voice the tone in the next octave.
var chordMap = map[int][]int{
	1: {0, 4, 7},
	2: {2, 5, 9},
	3: {4, 7, 11},
	4: {5, 9, 12},
	5: {7, 11, 14},
	6: {9, 12, 16},
	7: {11, 14, 17},
}

// ChordDegree looks up the progression degree (1-7) for a regime and clock step.
func ChordDegree(regime domain.Regime, step int) int {
	prog, ok := chordProgressions[regime]
	if !ok {
		prog = chordProgressions[domain.RegimeMajor]
	}
	return prog[((step%StepsPerBar)+StepsPerBar)%StepsPerBar]
}

// ChordTones returns the triad for a degree, adjusted for the regime.
// Degrees outside 1-7 fall back to the tonic triad.
func ChordTones(regime domain.Regime, degree int) []int {
	tones, ok := chordMap[degree]
	if !ok {
		tones = chordMap[1]
	}
	if regime == domain.RegimeMinor {
		return minorAdjust(tones)
	}
	out := make([]int, len(tones))
	copy(out, tones)
	return out
}

// minorAdjust lowers major-third-class offsets (4 and 9 mod 12) by one
// semitone to keep the triad inside the minor scale.
func minorAdjust(offsets []int) []int {
	adjusted := make([]int, len(offsets))
	for i, offset := range offsets {
		if m := offset % 12; m == 4 || m == 9 {
			adjusted[i] = offset - 1
		} else {
			adjusted[i] = offset
		}
	}
	return adjusted
}

// pitchClassSet reduces chord tones to their pitch classes for pool filtering.
func pitchClassSet(tones []int) map[int]bool {
	set := make(map[int]bool, len(tones))
	for _, t := range tones {
		set[((t%12)+12)%12] = true
	}
	return set
}

// ScalePool enumerates the pitches in [lo, hi] that are scale-legal under the
// given regime and root. The result is sorted and deduplicated by
// construction.
func ScalePool(regime domain.Regime, root, lo, hi int) Pool {
	var pool Pool
	for midi := lo; midi <= hi; midi++ {
		if regime.Contains(midi, root) {
			pool = append(pool, midi)
		}
	}
	return pool
}
