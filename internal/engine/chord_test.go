package engine

import (
	"testing"

	"invention_go/internal/domain"
)

func TestChordDegree(t *testing.T) {
	t.Run("Major Progression", func(t *testing.T) {
		expected := []int{1, 1, 4, 4, 2, 2, 5, 5, 6, 6, 4, 4, 5, 5, 1, 1}
		for step, want := range expected {
			if got := ChordDegree(domain.RegimeMajor, step); got != want {
				t.Errorf("step %d: expected degree %d, got %d", step, want, got)
			}
		}
	})

	t.Run("Minor Progression", func(t *testing.T) {
		expected := []int{1, 1, 4, 4, 6, 6, 2, 2, 3, 3, 7, 7, 5, 5, 1, 1}
		for step, want := range expected {
			if got := ChordDegree(domain.RegimeMinor, step); got != want {
				t.Errorf("step %d: expected degree %d, got %d", step, want, got)
			}
		}
	})

	t.Run("Step Normalization", func(t *testing.T) {
		if got := ChordDegree(domain.RegimeMajor, 18); got != 4 {
			t.Errorf("step 18 should wrap to step 2 (degree 4), got %d", got)
		}
		if got := ChordDegree(domain.RegimeMajor, -1); got != 1 {
			t.Errorf("step -1 should wrap to step 15 (degree 1), got %d", got)
		}
	})

	t.Run("Unknown Regime Falls Back To Major", func(t *testing.T) {
		if got := ChordDegree(domain.Regime("DORIAN"), 2); got != 4 {
			t.Errorf("expected major progression fallback, got %d", got)
		}
	})
}

func TestChordTones(t *testing.T) {
	t.Run("Major Triads", func(t *testing.T) {
		got := ChordTones(domain.RegimeMajor, 5)
		want := []int{7, 11, 14}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("degree 5: expected %v, got %v", want, got)
			}
		}
	})

	t.Run("Minor Adjustment Lowers Third-Class Offsets", func(t *testing.T) {
		got := ChordTones(domain.RegimeMinor, 6) // major: {9, 12, 16}
		want := []int{8, 12, 15}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("degree 6 minor: expected %v, got %v", want, got)
			}
		}
	})

	t.Run("Invalid Degree Falls Back To Tonic", func(t *testing.T) {
		got := ChordTones(domain.RegimeMajor, 9)
		want := []int{0, 4, 7}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("degree 9: expected tonic %v, got %v", want, got)
			}
		}
	})

	t.Run("Returned Slice Is A Copy", func(t *testing.T) {
		tones := ChordTones(domain.RegimeMajor, 1)
		tones[0] = 99
		if again := ChordTones(domain.RegimeMajor, 1); again[0] != 0 {
			t.Error("mutating the returned slice should not corrupt the table")
		}
	})
}

func TestScalePool(t *testing.T) {
	t.Run("Major One Octave", func(t *testing.T) {
		pool := ScalePool(domain.RegimeMajor, 60, 60, 72)
		want := Pool{60, 62, 64, 65, 67, 69, 71, 72}
		if len(pool) != len(want) {
			t.Fatalf("expected %v, got %v", want, pool)
		}
		for i := range want {
			if pool[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, pool)
			}
		}
	})

	t.Run("All Members Scale Legal", func(t *testing.T) {
		pool := ScalePool(domain.RegimeMinor, 57, 40, 90)
		for _, note := range pool {
			if !domain.RegimeMinor.Contains(note, 57) {
				t.Errorf("pitch %d is not legal in A minor", note)
			}
		}
	})

	t.Run("Empty Range", func(t *testing.T) {
		if pool := ScalePool(domain.RegimeMajor, 60, 70, 60); !pool.Empty() {
			t.Errorf("inverted range should yield an empty pool, got %v", pool)
		}
	})
}
