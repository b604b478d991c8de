package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const daysPerJulianCentury = 36525.0

// Epoch is a reference instant from which model time is measured.
type Epoch struct {
	name string
	jd   float64
}

var (
	// J2000 is 2000-01-01T12:00Z.
	J2000 = newEpoch("J2000", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC))
	// J2010 is 2010-01-00T00:00Z, i.e. midnight starting 2009-12-31.
	J2010 = newEpoch("J2010", time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
)

func newEpoch(name string, t time.Time) Epoch {
	return Epoch{name: name, jd: julian.TimeToJD(t)}
}

// JD returns the Julian date of the epoch.
func (e Epoch) JD() float64 { return e.jd }

// DaysUntil returns the (fractional) number of days from the epoch to t.
// The result is negative when t precedes the epoch.
func (e Epoch) DaysUntil(t time.Time) float64 {
	return julian.TimeToJD(t) - e.jd
}

// JulianCenturiesUntil returns DaysUntil(t) expressed in Julian centuries.
func (e Epoch) JulianCenturiesUntil(t time.Time) float64 {
	return e.DaysUntil(t) / daysPerJulianCentury
}

func (e Epoch) String() string { return e.name }
