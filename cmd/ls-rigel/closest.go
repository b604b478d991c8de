package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-rigel/internal/astro"
)

var errBadRadius = errors.New("radius must be in (0, 180] degrees")

func newClosestCmd() *cobra.Command {
	var azDeg, altDeg, radiusDeg float64
	cmd := &cobra.Command{
		Use:   "closest",
		Short: "Find the body nearest to a direction in the sky",
		Long: `Find the body nearest to the direction given by --to-az and --to-alt,
searching the stereographic plane centered on that direction within --radius
degrees. On a tie the Sun wins, then the Moon, the planets and the stars.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClosest(cmd, azDeg, altDeg, radiusDeg)
		},
	}
	cmd.Flags().Float64Var(&azDeg, "to-az", 180, "azimuth to search around, degrees")
	cmd.Flags().Float64Var(&altDeg, "to-alt", 45, "altitude to search around, degrees")
	cmd.Flags().Float64Var(&radiusDeg, "radius", 5, "search radius, degrees")
	return cmd
}

func runClosest(cmd *cobra.Command, azDeg, altDeg, radiusDeg float64) error {
	target, err := astro.NewHorizontalDeg(azDeg, altDeg)
	if err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	if radiusDeg <= 0 || radiusDeg > 180 {
		return fmt.Errorf("%w: %g", errBadRadius, radiusDeg)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// The target is the projection center, so it sits at the plane origin.
	a.state.SetCenter(target)
	if err := a.state.Update(); err != nil {
		return err
	}
	s := a.state.Snapshot().Sky

	// A disk of angular radius r around the center projects to plane radius tan(r/2).
	maxDistance := s.Projection().ApplyToAngle(2*astro.OfDeg(radiusDeg)) / 2
	o, ok := s.ObjectClosestTo(astro.Pt(0, 0), maxDistance)
	a.metrics.RecordQuery(ok)

	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintf(out, "Nothing within %.1f° of %s\n", radiusDeg, target)
		return nil
	}
	h := s.Horizontal(o)
	fmt.Fprintf(out, "%s at %s, %.2f° from %s (mag %.2f)\n",
		o.Info(), h, astro.ToDeg(h.AngularDistanceTo(target)), target, o.Magnitude())
	return nil
}
