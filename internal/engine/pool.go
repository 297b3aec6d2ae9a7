package engine

// Pool is an ordered, deduplicated set of selectable pitches. All lookups go
// through these methods so the linear scans can be swapped for binary search
// if pools ever grow beyond the current couple of octaves.
type Pool []int

// Empty reports whether the pool has no candidates.
func (p Pool) Empty() bool {
	return len(p) == 0
}

// Nearest returns the pool member closest to target, or target itself when
// the pool is empty. Ties resolve to the lower pitch.
func (p Pool) Nearest(target int) int {
	if len(p) == 0 {
		return target
	}
	best := p[0]
	for _, note := range p[1:] {
		if abs(note-target) < abs(best-target) {
			best = note
		}
	}
	return best
}

// NearestAbove returns the lowest pool member at or above target.
func (p Pool) NearestAbove(target int) (int, bool) {
	for _, note := range p {
		if note >= target {
			return note, true
		}
	}
	return 0, false
}

// IndexNearest returns the index of the member closest to v, or -1 when empty.
func (p Pool) IndexNearest(v int) int {
	if len(p) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(p); i++ {
		if abs(p[i]-v) < abs(p[best]-v) {
			best = i
		}
	}
	return best
}

// OffsetDegree moves from the member nearest note by offset scale degrees,
// clamped to the pool ends. Empty pools return note unchanged.
func (p Pool) OffsetDegree(note, offset int) int {
	idx := p.IndexNearest(note)
	if idx < 0 {
		return note
	}
	next := idx + offset
	if next < 0 {
		next = 0
	}
	if next > len(p)-1 {
		next = len(p) - 1
	}
	return p[next]
}

// Window returns the members within radius degrees of the given index,
// clamped to the pool bounds. The returned slice aliases the pool.
func (p Pool) Window(idx, radius int) Pool {
	if len(p) == 0 || idx < 0 {
		return p
	}
	lo := idx - radius
	if lo < 0 {
		lo = 0
	}
	hi := idx + radius
	if hi > len(p)-1 {
		hi = len(p) - 1
	}
	return p[lo : hi+1]
}

// FilterPitchClasses keeps only members whose offset from root falls in the
// given pitch-class set.
func (p Pool) FilterPitchClasses(root int, classes map[int]bool) Pool {
	var out Pool
	for _, note := range p {
		if classes[((note-root)%12+12)%12] {
			out = append(out, note)
		}
	}
	return out
}

// Above returns members strictly above the pivot.
func (p Pool) Above(pivot int) Pool {
	var out Pool
	for _, note := range p {
		if note > pivot {
			out = append(out, note)
		}
	}
	return out
}

// Below returns members strictly below the pivot.
func (p Pool) Below(pivot int) Pool {
	var out Pool
	for _, note := range p {
		if note < pivot {
			out = append(out, note)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
