package astro

import (
	"math"
	"testing"
	"time"
)

func TestEpoch_DaysUntil(t *testing.T) {
	tests := []struct {
		name  string
		epoch Epoch
		t     time.Time
		want  float64
	}{
		{"J2000 itself", J2000, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 0},
		{"J2010 itself", J2010, time.Date(2009, 12, 31, 0, 0, 0, 0, time.UTC), 0},
		{"sun reference date", J2010, time.Date(2003, 7, 27, 0, 0, 0, 0, time.UTC), -2349},
		{"moon reference date", J2010, time.Date(2003, 9, 1, 0, 0, 0, 0, time.UTC), -2313},
		{"half a day", J2000, time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), 0.5},
		{"other zone", J2000, time.Date(2000, 1, 2, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600)), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.epoch.DaysUntil(tt.t)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("%v.DaysUntil(%v) = %v, want %v", tt.epoch, tt.t, got, tt.want)
			}
		})
	}
}

func TestEpoch_JulianCenturiesUntil(t *testing.T) {
	t2100 := time.Date(2100, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := J2000.JulianCenturiesUntil(t2100); math.Abs(got-1) > 1e-9 {
		t.Errorf("JulianCenturiesUntil(2100) = %v, want 1", got)
	}
	if got := J2000.JD(); got != 2451545.0 {
		t.Errorf("J2000.JD() = %v, want 2451545.0", got)
	}
}

func TestSiderealGreenwich(t *testing.T) {
	// Practical Astronomy worked example: 1980-04-22 14:36:51.67 UT → 4h40m5.23s.
	when := time.Date(1980, 4, 22, 14, 36, 51, 670_000_000, time.UTC)
	want := OfHr(4 + 40.0/60 + 5.23/3600)
	got := SiderealGreenwich(when)
	if math.Abs(got-want) > OfHr(0.5/3600) {
		t.Errorf("SiderealGreenwich() = %vh, want %vh", ToHr(got), ToHr(want))
	}
}

func TestSiderealGreenwich_AgreesWithIAU(t *testing.T) {
	for _, when := range []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 4, 21, 17, 0, 0, time.UTC),
		time.Date(1995, 10, 10, 3, 0, 0, 0, time.UTC),
	} {
		a := SiderealGreenwich(when)
		b := GreenwichMeanSidereal(when)
		diff := math.Abs(a - b)
		if diff > math.Pi {
			diff = Tau - diff
		}
		if diff > OfDeg(0.01) {
			t.Errorf("at %v polynomial %v° and IAU %v° differ by %v°", when, ToDeg(a), ToDeg(b), ToDeg(diff))
		}
	}
}

func TestSiderealLocal(t *testing.T) {
	when := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	greenwich, _ := NewGeographicDeg(0, 0)
	east, _ := NewGeographicDeg(90, 0)

	g := SiderealLocal(when, greenwich)
	if math.Abs(g-SiderealGreenwich(when)) > 1e-12 {
		t.Errorf("local sidereal at lon 0 = %v, want Greenwich %v", g, SiderealGreenwich(when))
	}
	if got, want := SiderealLocal(when, east), NormalizePositive(g+math.Pi/2); math.Abs(got-want) > 1e-12 {
		t.Errorf("local sidereal at lon 90 = %v, want %v", got, want)
	}
}
