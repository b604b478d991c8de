package astro

import (
	"math"
	"testing"
	"time"
)

func TestObliquity_J2000(t *testing.T) {
	t2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	want, _ := OfDMS(23, 26, 21.45)
	if got := Obliquity(t2000); math.Abs(got-want) > 1e-12 {
		t.Errorf("Obliquity(J2000) = %v°, want %v°", ToDeg(got), ToDeg(want))
	}
	// Obliquity decreases by roughly 47″ per century.
	t2100 := time.Date(2100, 1, 1, 12, 0, 0, 0, time.UTC)
	if d := ToArcsec(Obliquity(t2000) - Obliquity(t2100)); math.Abs(d-46.815) > 0.01 {
		t.Errorf("obliquity drift over a century = %v″, want ~46.8″", d)
	}
}

func TestEclipticToEquatorial_Apply(t *testing.T) {
	// Practical Astronomy §27: λ=139°41′10″, β=4°52′31″ on 2009-07-06.
	lon, _ := OfDMS(139, 41, 10)
	lat, _ := OfDMS(4, 52, 31)
	ecl, err := NewEcliptic(lon, lat)
	if err != nil {
		t.Fatal(err)
	}

	conv := NewEclipticToEquatorial(time.Date(2009, 7, 6, 0, 0, 0, 0, time.UTC))
	equ := conv.Apply(ecl)

	wantRA := OfHr(9 + 34.0/60 + 53.32/3600)
	wantDec, _ := OfDMS(19, 32, 6.01)
	if math.Abs(equ.RA()-wantRA) > OfArcsec(0.1) {
		t.Errorf("RA = %vh, want %vh", equ.RAHr(), ToHr(wantRA))
	}
	if math.Abs(equ.Dec()-wantDec) > OfArcsec(0.1) {
		t.Errorf("Dec = %v°, want %v°", equ.DecDeg(), ToDeg(wantDec))
	}
}

func TestEclipticToEquatorial_Ranges(t *testing.T) {
	conv := NewEclipticToEquatorial(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	for lonDeg := 0.0; lonDeg < 360; lonDeg += 7.5 {
		for latDeg := -90.0; latDeg <= 90; latDeg += 15 {
			ecl, err := NewEcliptic(OfDeg(lonDeg), OfDeg(latDeg))
			if err != nil {
				t.Fatal(err)
			}
			equ := conv.Apply(ecl)
			if equ.RA() < 0 || equ.RA() >= Tau {
				t.Errorf("RA %v out of range for λ=%v β=%v", equ.RA(), lonDeg, latDeg)
			}
			if math.Abs(equ.Dec()) > math.Pi/2 {
				t.Errorf("Dec %v out of range for λ=%v β=%v", equ.Dec(), lonDeg, latDeg)
			}
		}
	}
}

func TestEquatorialToHorizontal_Apply(t *testing.T) {
	// Practical Astronomy §25: H=5h51m44s, δ=23°13′10″, φ=52°N
	// → altitude 19°20′3.64″, azimuth 283°16′15.70″.
	where, err := NewGeographicDeg(0, 52)
	if err != nil {
		t.Fatal(err)
	}
	conv := NewEquatorialToHorizontal(time.Date(2020, 5, 5, 20, 0, 0, 0, time.UTC), where)

	hourAngle := OfHr(5 + 51.0/60 + 44.0/3600)
	dec, _ := OfDMS(23, 13, 10)
	equ, err := NewEquatorial(NormalizePositive(conv.LocalSidereal()-hourAngle), dec)
	if err != nil {
		t.Fatal(err)
	}

	hor := conv.Apply(equ)
	wantAlt, _ := OfDMS(19, 20, 3.64)
	wantAz, _ := OfDMS(283, 16, 15.70)
	if math.Abs(hor.Alt()-wantAlt) > OfArcsec(0.1) {
		t.Errorf("Alt = %v°, want %v°", hor.AltDeg(), ToDeg(wantAlt))
	}
	if math.Abs(hor.Az()-wantAz) > OfArcsec(0.1) {
		t.Errorf("Az = %v°, want %v°", hor.AzDeg(), ToDeg(wantAz))
	}
}

func TestEquatorialToHorizontal_Poles(t *testing.T) {
	when := time.Date(2021, 12, 21, 3, 0, 0, 0, time.UTC)

	// At the north pole the altitude of any star equals its declination.
	pole, _ := NewGeographicDeg(0, 90)
	conv := NewEquatorialToHorizontal(when, pole)
	for _, decDeg := range []float64{-60, -10, 0, 33, 80} {
		equ, _ := NewEquatorial(OfDeg(123), OfDeg(decDeg))
		if got := conv.Apply(equ).AltDeg(); math.Abs(got-decDeg) > 1e-9 {
			t.Errorf("alt at pole for dec %v = %v", decDeg, got)
		}
	}

	// Polaris direction from mid latitudes: altitude equals latitude.
	lausanne, _ := NewGeographicDeg(6.57, 46.52)
	conv = NewEquatorialToHorizontal(when, lausanne)
	celestialPole, _ := NewEquatorial(0, math.Pi/2)
	hor := conv.Apply(celestialPole)
	if math.Abs(hor.AltDeg()-46.52) > 1e-9 {
		t.Errorf("alt of celestial pole = %v, want 46.52", hor.AltDeg())
	}
	if hor.Az() > 1e-9 && Tau-hor.Az() > 1e-9 {
		t.Errorf("az of celestial pole = %v, want 0", hor.AzDeg())
	}
}
