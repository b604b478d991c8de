package sky

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-rigel/internal/astro"
)

func geo(t *testing.T, lonDeg, latDeg float64) astro.Geographic {
	t.Helper()
	g, err := astro.NewGeographicDeg(lonDeg, latDeg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func clock(day time.Time, hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func between(t *testing.T, what string, got, from, to time.Time) {
	t.Helper()
	if got.Before(from) || got.After(to) {
		t.Errorf("%s = %s, want between %s and %s", what,
			got.Format("15:04"), from.Format("15:04"), to.Format("15:04"))
	}
}

func TestRiseSet_SunAtSolstice(t *testing.T) {
	day := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)
	lausanne := geo(t, 6.57, 46.52)

	w, err := RiseSet[*Sun](SunModel{}, lausanne, day, 24*time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if w.AlwaysUp || w.NeverUp {
		t.Fatalf("window = %+v, want an ordinary day", w)
	}

	// Geometric rise and set, without refraction
	between(t, "rise", w.Rise, clock(day, 3, 30), clock(day, 4, 0))
	between(t, "transit", w.Transit, clock(day, 11, 25), clock(day, 11, 45))
	between(t, "set", w.Set, clock(day, 19, 10), clock(day, 19, 40))

	// 90° - latitude + obliquity
	if got := astro.ToDeg(w.MaxAltitude); got < 66 || got > 67.5 {
		t.Errorf("max altitude = %.2f°, want about 66.9°", got)
	}
}

func TestRiseSet_MidnightSun(t *testing.T) {
	tromso := geo(t, 18.96, 69.65)

	summer, err := RiseSet[*Sun](SunModel{}, tromso, time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC), 24*time.Hour, 15*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !summer.AlwaysUp || !summer.Rise.IsZero() || !summer.Set.IsZero() {
		t.Errorf("June window = %+v, want the Sun always up", summer)
	}

	winter, err := RiseSet[*Sun](SunModel{}, tromso, time.Date(2020, time.December, 21, 0, 0, 0, 0, time.UTC), 24*time.Hour, 15*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !winter.NeverUp || winter.MaxAltitude > 0 {
		t.Errorf("December window = %+v, want the Sun never up", winter)
	}
}

func TestRiseSet_SetBeforeRise(t *testing.T) {
	// Starting at noon the Sun is up: it sets first and rises the next morning.
	day := time.Date(2020, time.June, 21, 0, 0, 0, 0, time.UTC)
	w, err := RiseSet[*Sun](SunModel{}, geo(t, 6.57, 46.52), clock(day, 12, 0), 24*time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	between(t, "set", w.Set, clock(day, 19, 10), clock(day, 19, 40))
	between(t, "rise", w.Rise, clock(day, 27, 30), clock(day, 28, 0))
	if !w.Set.Before(w.Rise) {
		t.Errorf("set %v should precede rise %v", w.Set, w.Rise)
	}
}

func TestRiseSet_OtherModels(t *testing.T) {
	where := geo(t, 6.57, 46.52)
	start := time.Date(2003, time.September, 1, 0, 0, 0, 0, time.UTC)

	moon, err := RiseSet[*Moon](MoonModel{}, where, start, 25*time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	jupiter, err := RiseSet[*Planet](Jupiter, where, start, 24*time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	for name, w := range map[string]Window{"Moon": moon, "Jupiter": jupiter} {
		if w.Transit.Before(start) || w.Transit.After(start.Add(25*time.Hour)) {
			t.Errorf("%s transit %v outside the span", name, w.Transit)
		}
		if math.Abs(w.MaxAltitude) > math.Pi/2 {
			t.Errorf("%s max altitude %v out of range", name, w.MaxAltitude)
		}
	}
}

func TestRiseSet_TooFewSamples(t *testing.T) {
	where := geo(t, 0, 0)
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		span, step time.Duration
	}{
		{"zero step", time.Hour, 0},
		{"negative step", time.Hour, -time.Minute},
		{"two samples", time.Hour, 40 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RiseSet[*Sun](SunModel{}, where, start, tt.span, tt.step); !errors.Is(err, ErrTooFewSamples) {
				t.Errorf("err = %v, want ErrTooFewSamples", err)
			}
		})
	}
}

func TestCrossing(t *testing.T) {
	t0 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * time.Minute)

	got := crossing(altitudeSample{t0, -0.1}, altitudeSample{t1, 0.3})
	if want := t0.Add(150 * time.Second); got.Sub(want).Abs() > time.Microsecond {
		t.Errorf("crossing = %v, want %v", got, want)
	}
	if got := crossing(altitudeSample{t0, 0}, altitudeSample{t1, 0}); !got.Equal(t0) {
		t.Errorf("flat crossing = %v, want %v", got, t0)
	}
}

func TestCulmination(t *testing.T) {
	t0 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	step := 10 * time.Minute
	// y = -(x - 0.3)² sampled at x = -1, 0, 1
	samples := []altitudeSample{
		{t0, -1.69},
		{t0.Add(step), -0.09},
		{t0.Add(2 * step), -0.49},
	}

	tm, alt := culmination(samples, 1)
	if want := t0.Add(step + 3*time.Minute); tm.Sub(want).Abs() > time.Millisecond {
		t.Errorf("culmination time = %v, want %v", tm, want)
	}
	if math.Abs(alt) > 1e-12 {
		t.Errorf("culmination altitude = %v, want 0", alt)
	}

	// At the ends of the span the sample is returned as is.
	if tm, alt := culmination(samples, 0); !tm.Equal(t0) || alt != -1.69 {
		t.Errorf("culmination at start = (%v, %v)", tm, alt)
	}
}

func TestElongationAndGlare(t *testing.T) {
	when := time.Date(2020, time.June, 21, 12, 0, 0, 0, time.UTC)
	days := astro.J2010.DaysUntil(when)
	conv := astro.NewEclipticToEquatorial(when)
	sun := SunModel{}.At(days, conv)

	if got := Elongation(sun, sun); got != 0 {
		t.Errorf("Elongation(Sun, Sun) = %v, want 0", got)
	}
	for _, p := range PlanetsExceptEarth() {
		e := Elongation(p.At(days, conv), sun)
		if e < 0 || e > math.Pi {
			t.Errorf("%s elongation %v out of [0, π]", p.Name(), e)
		}
	}

	tests := []struct {
		deg  float64
		want Glare
	}{
		{0, GlareHidden},
		{9.9, GlareHidden},
		{10, GlareTwilight},
		{19.9, GlareTwilight},
		{20, GlareNone},
		{180, GlareNone},
	}
	for _, tt := range tests {
		if got := GlareAt(astro.OfDeg(tt.deg)); got != tt.want {
			t.Errorf("GlareAt(%v°) = %v, want %v", tt.deg, got, tt.want)
		}
	}
	if GlareHidden.String() != "hidden" || Glare(9).String() != "unknown" {
		t.Error("Glare.String mismatch")
	}
}
