// Package astro provides angle arithmetic, spherical coordinate frames and the
// conversions between them.
//
// All angles are float64 radians unless a function name says otherwise.
package astro

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// ErrInvalidArgument is returned when a value lies outside its legal range.
var ErrInvalidArgument = errors.New("invalid argument")

var positiveTurn = mustRightOpen(0, Tau)

// NormalizePositive reduces rad into [0, 2π).
func NormalizePositive(rad float64) float64 {
	return positiveTurn.Reduce(rad)
}

// OfDeg converts degrees to radians.
func OfDeg(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// ToDeg converts radians to degrees.
func ToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// OfHr converts hours of right ascension (1h = 15°) to radians.
func OfHr(hr float64) float64 {
	return unit.HourAngleFromHour(hr).Rad()
}

// ToHr converts radians to hours.
func ToHr(rad float64) float64 {
	return unit.HourAngle(rad).Hour()
}

// OfArcsec converts arcseconds to radians.
func OfArcsec(sec float64) float64 {
	return unit.AngleFromSec(sec).Rad()
}

// ToArcsec converts radians to arcseconds.
func ToArcsec(rad float64) float64 {
	return unit.Angle(rad).Sec()
}

// OfDMS converts degrees, minutes and seconds to radians. Minutes and seconds
// must lie in [0, 60).
func OfDMS(deg, min int, sec float64) (float64, error) {
	if deg < 0 || min < 0 || min >= 60 || sec < 0 || sec >= 60 {
		return 0, fmt.Errorf("%w: %d°%d′%g″", ErrInvalidArgument, deg, min, sec)
	}
	return unit.NewAngle(' ', deg, min, sec).Rad(), nil
}

// Polynomial evaluates c[0]·x^(n-1) + … + c[n-1] using Horner's rule.
// Coefficients are given from the highest degree down.
func Polynomial(x float64, coeffs ...float64) float64 {
	var acc float64
	for _, c := range coeffs {
		acc = acc*x + c
	}
	return acc
}
