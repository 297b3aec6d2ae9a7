package domain

import (
	"encoding/json"
	"testing"
)

func TestRoundPrice(t *testing.T) {
	cases := []struct {
		in     float64
		places int32
		want   float64
	}{
		{430.123456, 2, 430.12},
		{430.125, 2, 430.13},
		{430.0, 2, 430.0},
		{0.00015, 4, 0.0002},
		{509.99999, 4, 510.0},
	}

	for _, tc := range cases {
		if got := RoundPrice(tc.in, tc.places); got != tc.want {
			t.Errorf("RoundPrice(%v, %d) = %v, want %v", tc.in, tc.places, got, tc.want)
		}
	}
}

func TestBundle_NullRests(t *testing.T) {
	pitch := 72
	bundle := Bundle{
		Soprano: []*int{&pitch, nil},
		Bass:    []*int{nil, &pitch},
	}

	data, err := json.Marshal(bundle)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	soprano, ok := decoded["soprano_sequence"].([]any)
	if !ok || len(soprano) != 2 {
		t.Fatalf("soprano_sequence missing or malformed: %v", decoded)
	}
	if soprano[0] != float64(72) || soprano[1] != nil {
		t.Errorf("rests must serialize as null: %v", soprano)
	}
}
