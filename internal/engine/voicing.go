package engine

// Voice-leading selection. Every helper here degrades safely on an empty
// pool: repetition or the raw target comes out instead of an error, so the
// stream never stalls on a pathological range.

// pickScaleStep chooses the pool member nearest target within a window of
// maxDegreeStep scale degrees around the previous note. A small penalty on
// re-picking the previous note nudges the line into motion.
func pickScaleStep(prev *int, target int, pool Pool, maxDegreeStep int, repeatPenalty float64) int {
	if pool.Empty() {
		if prev != nil {
			return *prev
		}
		return target
	}
	if prev == nil {
		return pool.Nearest(target)
	}

	window := pool.Window(pool.IndexNearest(*prev), maxDegreeStep)
	best := window[0]
	bestCost := stepCost(best, target, *prev, repeatPenalty)
	for _, note := range window[1:] {
		if cost := stepCost(note, target, *prev, repeatPenalty); cost < bestCost {
			best = note
			bestCost = cost
		}
	}
	return best
}

func stepCost(note, target, prev int, repeatPenalty float64) float64 {
	cost := float64(abs(note - target))
	if note == prev {
		cost += repeatPenalty
	}
	return cost
}

// enforceStepwiseMotion replaces a move smaller than minMove with the
// nearest pool member strictly beyond the previous note in the chosen
// direction.
func enforceStepwiseMotion(prev *int, candidate int, pool Pool, minMove int) int {
	if prev == nil {
		return candidate
	}
	if abs(candidate-*prev) >= minMove {
		return candidate
	}
	if pool.Empty() {
		return candidate
	}
	if candidate >= *prev {
		if higher := pool.Above(*prev); !higher.Empty() {
			return higher[0]
		}
		return candidate
	}
	if lower := pool.Below(*prev); !lower.Empty() {
		return lower[len(lower)-1]
	}
	return candidate
}

// stepTowardTarget walks stepDegrees scale degrees from the previous note in
// the direction of the target. Reports false when there is no previous note
// or no pool to walk.
func stepTowardTarget(prev *int, target int, pool Pool, stepDegrees int) (int, bool) {
	if prev == nil || pool.Empty() {
		return 0, false
	}
	direction := 1
	if target < *prev {
		direction = -1
	}
	return pool.OffsetDegree(*prev, stepDegrees*direction), true
}

// escapeStuck forces a two-degree jump in the given direction; the last
// resort once a voice has repeated past the stuck limit.
func escapeStuck(note int, pool Pool, direction int) int {
	return pool.OffsetDegree(note, 2*direction)
}

// dissonant reports whether the interval class between the voices is a minor
// second, tritone, or major seventh.
func dissonant(soprano, bass int) bool {
	interval := abs(soprano-bass) % 12
	return interval == 1 || interval == 6 || interval == 11
}
