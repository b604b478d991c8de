package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/metrics"
	"github.com/litescript/ls-rigel/internal/sky"
	"github.com/litescript/ls-rigel/internal/state"
)

// summaryOptions select the headless output.
type summaryOptions struct {
	watch   time.Duration
	json    bool
	events  int
	riseSet bool
}

func newSummaryCmd() *cobra.Command {
	var opts summaryOptions
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print where the Sun, the Moon and the planets are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts)
		},
	}
	cmd.Flags().DurationVar(&opts.watch, "watch", 0, "repeat at this interval until interrupted, e.g. 30s")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print a JSON report instead of a table")
	cmd.Flags().IntVar(&opts.events, "events", 0, "also list this many recent horizon crossings")
	cmd.Flags().BoolVar(&opts.riseSet, "rise-set", false, "add rise, transit and set times over the next 24 hours")
	return cmd
}

func runSummary(cmd *cobra.Command, opts summaryOptions) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx, cmd)

	out := cmd.OutOrStdout()
	once := func() error {
		if err := a.state.Update(); err != nil {
			return err
		}
		r, err := newSkyReport(a.state.Snapshot(), opts)
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(out, r)
		}
		stats, err := a.metrics.Builds()
		if err != nil {
			return err
		}
		writeSummary(out, r, stats)
		return nil
	}

	if opts.watch <= 0 {
		return once()
	}

	// Watch mode: repeat at interval
	if err := once(); err != nil {
		a.log.Error("%v", err)
	}
	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !opts.json {
				fmt.Fprintln(out)
			}
			if err := once(); err != nil {
				a.log.Error("%v", err)
			}
		}
	}
}

// bodyReport is one body in a skyReport.
type bodyReport struct {
	Name       string  `json:"name"`
	Info       string  `json:"info"`
	AzDeg      float64 `json:"az_deg"`
	AltDeg     float64 `json:"alt_deg"`
	Direction  string  `json:"direction"`
	RAHours    float64 `json:"ra_hours"`
	DecDeg     float64 `json:"dec_deg"`
	Magnitude  float64 `json:"magnitude"`
	SizeArcmin float64 `json:"size_arcmin"`
	Above      bool    `json:"above_horizon"`
	Elongation float64 `json:"elongation_deg"`
	Glare      string  `json:"glare,omitempty"`

	Rise    *time.Time `json:"rise,omitempty"`
	Transit *time.Time `json:"transit,omitempty"`
	Set     *time.Time `json:"set,omitempty"`
}

// skyReport is the headless view of a snapshot.
type skyReport struct {
	Time       time.Time     `json:"time"`
	LatDeg     float64       `json:"lat_deg"`
	LonDeg     float64       `json:"lon_deg"`
	Bodies     []bodyReport  `json:"bodies"`
	Stars      int           `json:"stars"`
	StarsAbove int           `json:"stars_above_horizon"`
	Events     []state.Event `json:"events,omitempty"`

	// Local sidereal time as used for the sky, and the IAU 1982 Greenwich mean
	// sidereal time as a cross-check.
	LocalSiderealHours     float64 `json:"lst_hours"`
	GreenwichSiderealHours float64 `json:"gmst_hours"`
}

func newSkyReport(snap state.Snapshot, opts summaryOptions) (skyReport, error) {
	s := snap.Sky
	where := s.Where()
	r := skyReport{
		Time:   s.Time().UTC(),
		LatDeg: where.LatDeg(),
		LonDeg: where.LonDeg(),

		LocalSiderealHours:     astro.ToHr(astro.SiderealLocal(s.Time(), where)),
		GreenwichSiderealHours: astro.ToHr(astro.GreenwichMeanSidereal(s.Time())),
	}

	bodies := []sky.Object{s.Sun(), s.Moon()}
	for _, p := range s.Planets() {
		bodies = append(bodies, p)
	}
	var windows map[string]sky.Window
	if opts.riseSet {
		var err error
		if windows, err = riseSetWindows(s); err != nil {
			return skyReport{}, err
		}
	}
	for _, o := range bodies {
		b := newBodyReport(s, o)
		if w, ok := windows[o.Name()]; ok {
			b.Rise, b.Transit, b.Set = timeOrNil(w.Rise), timeOrNil(w.Transit), timeOrNil(w.Set)
		}
		r.Bodies = append(r.Bodies, b)
	}

	for _, st := range s.Stars() {
		r.Stars++
		if s.Horizontal(st).Alt() > 0 {
			r.StarsAbove++
		}
	}

	if n := opts.events; n > 0 {
		r.Events = snap.Events
		if len(r.Events) > n {
			r.Events = r.Events[len(r.Events)-n:]
		}
	}
	return r, nil
}

const (
	riseSetSpan = 24 * time.Hour
	riseSetStep = 10 * time.Minute
)

// riseSetWindows samples every body over the day following the snapshot,
// keyed by body name.
func riseSetWindows(s *sky.ObservedSky) (map[string]sky.Window, error) {
	where, start := s.Where(), s.Time()
	windows := make(map[string]sky.Window)

	w, err := sky.RiseSet[*sky.Sun](sky.SunModel{}, where, start, riseSetSpan, riseSetStep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Sun().Name(), err)
	}
	windows[s.Sun().Name()] = w

	if w, err = sky.RiseSet[*sky.Moon](sky.MoonModel{}, where, start, riseSetSpan, riseSetStep); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Moon().Name(), err)
	}
	windows[s.Moon().Name()] = w

	for _, p := range sky.PlanetsExceptEarth() {
		if w, err = sky.RiseSet[*sky.Planet](p, where, start, riseSetSpan, riseSetStep); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		windows[p.Name()] = w
	}
	return windows, nil
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func newBodyReport(s *sky.ObservedSky, o sky.Object) bodyReport {
	h := s.Horizontal(o)
	equ := o.Equatorial()
	elong := sky.Elongation(o, s.Sun())
	b := bodyReport{
		Name:       o.Name(),
		Info:       o.Info(),
		AzDeg:      h.AzDeg(),
		AltDeg:     h.AltDeg(),
		Direction:  h.AzOctantName("N", "E", "S", "W"),
		RAHours:    equ.RAHr(),
		DecDeg:     equ.DecDeg(),
		Magnitude:  o.Magnitude(),
		SizeArcmin: astro.ToDeg(o.AngularSize()) * 60,
		Above:      h.Alt() > 0,
		Elongation: astro.ToDeg(elong),
	}
	if _, isSun := o.(*sky.Sun); !isSun {
		b.Glare = sky.GlareAt(elong).String()
	}
	return b
}

func writeJSON(w io.Writer, r skyReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeSummary(w io.Writer, r skyReport, stats metrics.BuildStats) {
	fmt.Fprintf(w, "Sky at %s from %.4f°, %.4f°\n", r.Time.Format(time.RFC3339), r.LatDeg, r.LonDeg)

	headers := []string{"Body", "Az", "Alt", "Dir", "RA", "Dec", "Mag", "Size", "Elong"}
	if r.hasWindows() {
		headers = append(headers, "Rise", "Transit", "Set")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, b := range r.Bodies {
		row := []string{
			b.Info,
			fmt.Sprintf("%.1f°", b.AzDeg),
			fmt.Sprintf("%.1f°", b.AltDeg),
			b.Direction,
			fmt.Sprintf("%.2fh", b.RAHours),
			fmt.Sprintf("%+.1f°", b.DecDeg),
			fmt.Sprintf("%.2f", b.Magnitude),
			fmt.Sprintf("%.1f'", b.SizeArcmin),
			elongation(b),
		}
		if r.hasWindows() {
			row = append(row, clockOrDash(b.Rise), clockOrDash(b.Transit), clockOrDash(b.Set))
		}
		t.Row(row...)
	}
	fmt.Fprintln(w, t.String())

	fmt.Fprintf(w, "%d of %d stars above the horizon\n", r.StarsAbove, r.Stars)
	fmt.Fprintf(w, "Sidereal time: %.4fh local, %.4fh Greenwich\n", r.LocalSiderealHours, r.GreenwichSiderealHours)
	if len(r.Events) > 0 {
		fmt.Fprintln(w, "Horizon crossings:")
		for _, e := range r.Events {
			fmt.Fprintf(w, "  %s  %-4s %s\n", e.Timestamp.UTC().Format("2006-01-02 15:04"), e.Type, e.Body)
		}
	}
	fmt.Fprintf(w, "Sky builds: %d, mean %v\n", stats.Count, stats.Mean.Round(time.Microsecond))
}

func (r skyReport) hasWindows() bool {
	for _, b := range r.Bodies {
		if b.Transit != nil {
			return true
		}
	}
	return false
}

func elongation(b bodyReport) string {
	if b.Glare == "" {
		return "-"
	}
	return fmt.Sprintf("%.0f° %s", b.Elongation, b.Glare)
}

func clockOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}
