package sky

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-rigel/internal/astro"
)

func equ(t *testing.T, raDeg, decDeg float64) astro.Equatorial {
	t.Helper()
	e, err := astro.NewEquatorial(astro.OfDeg(raDeg), astro.OfDeg(decDeg))
	if err != nil {
		t.Fatalf("NewEquatorial(%v, %v): %v", raDeg, decDeg, err)
	}
	return e
}

func TestNewStar_Validation(t *testing.T) {
	pos := equ(t, 78.6, -8.2)
	tests := []struct {
		name       string
		hip        int
		starName   string
		colorIndex float64
		wantErr    error
	}{
		{"valid", 24436, "Rigel", -0.03, nil},
		{"hip zero", 0, "? Ori", 0, nil},
		{"negative hip", -1, "Rigel", 0, ErrInvalidArgument},
		{"color too blue", 1, "x", -0.51, ErrInvalidArgument},
		{"color too red", 1, "x", 5.51, ErrInvalidArgument},
		{"color at bounds", 1, "x", 5.5, nil},
		{"empty name", 1, "", 0, ErrRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStar(tt.hip, tt.starName, pos, 0.18, tt.colorIndex)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewStar() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStar() unexpected error: %v", err)
			}
			if s.AngularSize() != 0 {
				t.Errorf("star angular size = %v, want 0", s.AngularSize())
			}
			if s.HipparcosID() != tt.hip || s.Name() != tt.starName || s.Info() != tt.starName {
				t.Errorf("star fields not preserved: %d %q", s.HipparcosID(), s.Name())
			}
		})
	}
}

func TestStar_ColorTemperature(t *testing.T) {
	tests := []struct {
		colorIndex float64
		minK, maxK int
	}{
		{-0.03, 10000, 10600}, // Rigel, blue-white
		{0.0, 9900, 10300},    // Vega
		{0.65, 5700, 6000},    // Sun-like
		{1.85, 3300, 3600},    // Antares, red
	}
	for _, tt := range tests {
		s, err := NewStar(1, "x", equ(t, 0, 0), 1, tt.colorIndex)
		if err != nil {
			t.Fatal(err)
		}
		if k := s.ColorTemperature(); k < tt.minK || k > tt.maxK {
			t.Errorf("ColorTemperature(ci=%v) = %dK, want %d-%dK", tt.colorIndex, k, tt.minK, tt.maxK)
		}
	}
}

func TestNewPlanet_NegativeAngularSize(t *testing.T) {
	if _, err := NewPlanet("Mars", equ(t, 10, 10), -1e-9, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewPlanet(size < 0) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewPlanet("Mars", equ(t, 10, 10), math.NaN(), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewPlanet(size NaN) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewPlanet("", equ(t, 10, 10), 0, 0); !errors.Is(err, ErrRequired) {
		t.Errorf("NewPlanet(no name) error = %v, want ErrRequired", err)
	}
}

func TestNewSun(t *testing.T) {
	ecl := astro.EclipticOf(1, 0)
	s, err := NewSun(ecl, equ(t, 57, 21), 0.009, 3)
	if err != nil {
		t.Fatalf("NewSun() error: %v", err)
	}
	if s.Name() != "Soleil" || s.Magnitude() != -26.7 {
		t.Errorf("Sun = %q mag %v, want Soleil mag -26.7", s.Name(), s.Magnitude())
	}
	if s.MeanAnomaly() != 3 || s.Ecliptic().Lon() != 1 {
		t.Errorf("Sun fields not preserved")
	}
	if _, err := NewSun(ecl, equ(t, 0, 0), -0.1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewSun(size < 0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestNewMoon(t *testing.T) {
	tests := []struct {
		phase   float64
		wantErr bool
	}{
		{0, false},
		{0.5, false},
		{1, false},
		{-0.01, true},
		{1.01, true},
	}
	for _, tt := range tests {
		_, err := NewMoon(equ(t, 0, 0), 0.009, 0, tt.phase)
		if tt.wantErr && !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewMoon(phase=%v) error = %v, want ErrInvalidArgument", tt.phase, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("NewMoon(phase=%v) unexpected error: %v", tt.phase, err)
		}
	}
	if _, err := NewMoon(equ(t, 0, 0), -1, 0, 0.5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewMoon(size < 0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestMoon_Info(t *testing.T) {
	m, err := NewMoon(equ(t, 0, 0), 0.009, 0, 0.3752)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Info(); got != "Lune (37.5%)" {
		t.Errorf("Info() = %q, want %q", got, "Lune (37.5%)")
	}
	if m.Name() != "Lune" {
		t.Errorf("Name() = %q, want Lune", m.Name())
	}
}

func TestNewAsterism(t *testing.T) {
	if _, err := NewAsterism(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewAsterism(nil) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewAsterism([]*Star{nil}); !errors.Is(err, ErrRequired) {
		t.Errorf("NewAsterism(nil star) error = %v, want ErrRequired", err)
	}

	a1, _ := NewStar(1, "a", equ(t, 0, 0), 1, 0)
	a2, _ := NewStar(2, "b", equ(t, 1, 1), 1, 0)
	stars := []*Star{a1, a2}
	ast, err := NewAsterism(stars)
	if err != nil {
		t.Fatal(err)
	}
	stars[0] = a2 // caller's slice must not leak into the asterism
	got := ast.Stars()
	if len(got) != 2 || got[0] != a1 || got[1] != a2 {
		t.Errorf("Stars() = %v, want [a b] by identity", got)
	}
	got[0] = nil
	if ast.Stars()[0] != a1 {
		t.Error("Stars() exposes internal slice")
	}
}
