package astro

import (
	"errors"
	"math"
	"testing"
)

func TestNewInterval_RejectsBadBounds(t *testing.T) {
	bounds := [][2]float64{{1, 1}, {2, 1}, {math.NaN(), 1}}
	for _, b := range bounds {
		if _, err := NewRightOpenInterval(b[0], b[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewRightOpenInterval(%v, %v) error = %v, want ErrInvalidArgument", b[0], b[1], err)
		}
		if _, err := NewClosedInterval(b[0], b[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewClosedInterval(%v, %v) error = %v, want ErrInvalidArgument", b[0], b[1], err)
		}
	}
	if _, err := SymmetricRightOpen(0); err == nil {
		t.Error("SymmetricRightOpen(0) should fail")
	}
}

func TestRightOpenInterval_Contains(t *testing.T) {
	iv, err := NewRightOpenInterval(-1, 1)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		v    float64
		want bool
	}{
		{-1, true},
		{0, true},
		{0.999, true},
		{1, false},
		{-1.001, false},
	}
	for _, tt := range tests {
		if got := iv.Contains(tt.v); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", iv, tt.v, got, tt.want)
		}
	}
}

func TestRightOpenInterval_Reduce(t *testing.T) {
	iv, err := NewRightOpenInterval(-3, 7)
	if err != nil {
		t.Fatal(err)
	}

	for v := -100.0; v <= 100; v += 0.73 {
		got := iv.Reduce(v)
		if !iv.Contains(got) {
			t.Fatalf("Reduce(%v) = %v, not in %v", v, got, iv)
		}
		// got ≡ v (mod size)
		k := (v - got) / iv.Size()
		if math.Abs(k-math.Round(k)) > 1e-9 {
			t.Errorf("Reduce(%v) = %v, not congruent modulo %v", v, got, iv.Size())
		}
	}
}

func TestRightOpenInterval_ReduceKnownValues(t *testing.T) {
	iv, _ := SymmetricRightOpen(360)
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, -180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{720, 0},
	}
	for _, tt := range tests {
		if got := iv.Reduce(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Reduce(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClosedInterval_Clip(t *testing.T) {
	iv, err := NewClosedInterval(-2, 5)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in, want float64
	}{
		{-10, -2},
		{-2, -2},
		{0, 0},
		{5, 5},
		{5.0001, 5},
		{math.Inf(1), 5},
		{math.Inf(-1), -2},
	}
	for _, tt := range tests {
		if got := iv.Clip(tt.in); got != tt.want {
			t.Errorf("Clip(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !iv.Contains(5) || !iv.Contains(-2) || iv.Contains(5.1) {
		t.Error("closed interval should contain both bounds and nothing beyond")
	}
}

func TestIntervalString(t *testing.T) {
	ro, _ := NewRightOpenInterval(0, 1)
	cl, _ := NewClosedInterval(0, 1)
	if got := ro.String(); got != "[0.00,1.00[" {
		t.Errorf("RightOpenInterval.String() = %q", got)
	}
	if got := cl.String(); got != "[0.00,1.00]" {
		t.Errorf("ClosedInterval.String() = %q", got)
	}
}
