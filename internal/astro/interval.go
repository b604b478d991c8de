package astro

import (
	"fmt"

	"github.com/soniakeys/unit"
)

// RightOpenInterval is the interval [low, high).
type RightOpenInterval struct {
	low, high float64
}

// NewRightOpenInterval returns [low, high). low must be strictly below high.
func NewRightOpenInterval(low, high float64) (RightOpenInterval, error) {
	if !(low < high) {
		return RightOpenInterval{}, fmt.Errorf("%w: interval bounds %g >= %g", ErrInvalidArgument, low, high)
	}
	return RightOpenInterval{low: low, high: high}, nil
}

// SymmetricRightOpen returns [-size/2, size/2).
func SymmetricRightOpen(size float64) (RightOpenInterval, error) {
	return NewRightOpenInterval(-size/2, size/2)
}

func mustRightOpen(low, high float64) RightOpenInterval {
	iv, err := NewRightOpenInterval(low, high)
	if err != nil {
		panic(err)
	}
	return iv
}

func (iv RightOpenInterval) Low() float64  { return iv.low }
func (iv RightOpenInterval) High() float64 { return iv.high }
func (iv RightOpenInterval) Size() float64 { return iv.high - iv.low }

// Contains reports whether low <= v < high.
func (iv RightOpenInterval) Contains(v float64) bool {
	return iv.low <= v && v < iv.high
}

// Reduce folds v into the interval: low + floorMod(v-low, size).
func (iv RightOpenInterval) Reduce(v float64) float64 {
	r := iv.low + unit.PMod(v-iv.low, iv.Size())
	// PMod can round up to exactly size for tiny negative offsets.
	if r >= iv.high {
		return iv.low
	}
	return r
}

func (iv RightOpenInterval) String() string {
	return fmt.Sprintf("[%.2f,%.2f[", iv.low, iv.high)
}

// ClosedInterval is the interval [low, high].
type ClosedInterval struct {
	low, high float64
}

// NewClosedInterval returns [low, high]. low must be strictly below high.
func NewClosedInterval(low, high float64) (ClosedInterval, error) {
	if !(low < high) {
		return ClosedInterval{}, fmt.Errorf("%w: interval bounds %g >= %g", ErrInvalidArgument, low, high)
	}
	return ClosedInterval{low: low, high: high}, nil
}

// SymmetricClosed returns [-size/2, size/2].
func SymmetricClosed(size float64) (ClosedInterval, error) {
	return NewClosedInterval(-size/2, size/2)
}

func mustClosed(low, high float64) ClosedInterval {
	iv, err := NewClosedInterval(low, high)
	if err != nil {
		panic(err)
	}
	return iv
}

func (iv ClosedInterval) Low() float64  { return iv.low }
func (iv ClosedInterval) High() float64 { return iv.high }
func (iv ClosedInterval) Size() float64 { return iv.high - iv.low }

// Contains reports whether low <= v <= high.
func (iv ClosedInterval) Contains(v float64) bool {
	return iv.low <= v && v <= iv.high
}

// Clip saturates v to the interval bounds.
func (iv ClosedInterval) Clip(v float64) float64 {
	switch {
	case v <= iv.low:
		return iv.low
	case v > iv.high:
		return iv.high
	default:
		return v
	}
}

func (iv ClosedInterval) String() string {
	return fmt.Sprintf("[%.2f,%.2f]", iv.low, iv.high)
}
