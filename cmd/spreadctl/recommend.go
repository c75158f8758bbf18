package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/spf13/cobra"
)

type recommendFlags struct {
	zone, timeOfDay, light, turbidity, seaState, tide, moon, species, profile string

	depth, speed, threshold float64
	lines                   int
	asJSON, details         bool
}

func (f *recommendFlags) conditions() model.Conditions {
	c := model.Conditions{
		Zone:       model.Zone(f.zone),
		WaterDepth: f.depth,
		BoatSpeed:  f.speed,
		TimeOfDay:  model.TimeOfDay(f.timeOfDay),
		Light:      model.LightLevel(f.light),
		Turbidity:  model.Turbidity(f.turbidity),
		SeaState:   model.SeaState(f.seaState),
		Tide:       model.Tide(f.tide),
		Moon:       model.MoonPhase(f.moon),
		Profile:    model.BoatProfile(f.profile),
		Lines:      f.lines,
	}
	if f.species != "" {
		c.Species, _ = model.ParseSpecies(f.species)
	}
	return c
}

func recommendCmd(catalogPath *string) *cobra.Command {
	f := &recommendFlags{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a spread for the given conditions",
		Long: `Filter and score the catalog for the given conditions, then lay out the best
lures on the spread positions and advise a boat speed.`,
		Example: `  spreadctl recommend --zone lagoon --depth 3 --speed 5 --time morning \
    --light strong --turbidity clear --sea calm --tide rising --moon full --lines 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cat, err := loadCatalog(ctx, *catalogPath)
			if err != nil {
				return err
			}

			eng := engine.New(engine.WithThreshold(f.threshold))
			res, err := eng.Run(ctx, f.conditions(), cat.Lures)
			if err != nil {
				return describeFailure(cmd.ErrOrStderr(), err)
			}

			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printSpread(cmd.OutOrStdout(), &res, f.details)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.zone, "zone", "", "fishing zone (lagoon, reef, pass, offshore, deep, structure)")
	fl.Float64Var(&f.depth, "depth", 0, "water depth in meters")
	fl.Float64Var(&f.speed, "speed", 0, "boat speed in knots")
	fl.StringVar(&f.timeOfDay, "time", "", "time of day (dawn, morning, midday, afternoon, dusk, night)")
	fl.StringVar(&f.light, "light", "", "light level (strong, diffuse, low, dark, night)")
	fl.StringVar(&f.turbidity, "turbidity", "clear", "water clarity (clear, slightly-turbid, turbid, very-turbid)")
	fl.StringVar(&f.seaState, "sea", "calm", "sea state (calm, light-chop, formed, rough)")
	fl.StringVar(&f.tide, "tide", "slack", "tide (rising, slack, falling)")
	fl.StringVar(&f.moon, "moon", "new", "moon phase (new, first-quarter, full, last-quarter)")
	fl.StringVar(&f.species, "species", "", "target species, common names accepted")
	fl.StringVar(&f.profile, "profile", "standard", "boat profile (limited, standard, sport)")
	fl.IntVar(&f.lines, "lines", model.MaxLines, "number of lines to fish (1-5)")
	fl.Float64Var(&f.threshold, "threshold", engine.DefaultThreshold, "minimum total score of a recommended lure")
	fl.BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	fl.BoolVar(&f.details, "details", false, "print the per-factor score breakdown")
	for _, name := range []string{"zone", "depth", "speed", "time", "light"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// describeFailure prints an engine error's hints and returns the error.
func describeFailure(w io.Writer, err error) error {
	var e *engine.Error
	if errors.As(err, &e) && len(e.Hints) > 0 {
		fmt.Fprintln(w, "hints:")
		for _, h := range e.Hints {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
	return err
}

func printSpread(w io.Writer, res *engine.Result, details bool) {
	sp := &res.Spread
	fmt.Fprintf(w, "%d of %d lures compatible, %d above threshold\n\n",
		res.Stats.Compatible, res.Stats.Catalog, res.Stats.Qualified)

	for i := range sp.Suggestions {
		s := &sp.Suggestions[i]
		fmt.Fprintf(w, "%s  %-20s %-14s %3d m  score %s  catch %s%%\n",
			humanize.Ordinal(i+1), s.Lure.ID, s.Position, s.DistanceM,
			humanize.FtoaWithDigits(s.TotalScore, 1), humanize.FtoaWithDigits(s.Probability, 1))
		fmt.Fprintf(w, "     technique: %s\n     colour:    %s\n     conditions: %s\n",
			s.Justification.Technique, s.Justification.Color, s.Justification.Conditions)
		if details {
			for _, d := range s.Details {
				fmt.Fprintf(w, "       %-11s %-14s %5s/%-3s %s\n", d.Phase, d.Factor,
					humanize.FtoaWithDigits(d.Points, 1), humanize.Ftoa(d.Max), d.Note)
			}
		}
	}

	fmt.Fprintf(w, "\nmean distance %s m\n", humanize.FtoaWithDigits(sp.MeanDistanceM, 1))
	fmt.Fprintf(w, "speed %s kn (%s-%s kn): %s\n",
		humanize.FtoaWithDigits(sp.Speed.Knots, 1),
		humanize.FtoaWithDigits(sp.Speed.MinKnots, 1),
		humanize.FtoaWithDigits(sp.Speed.MaxKnots, 1),
		sp.Speed.Rationale)
	if len(sp.Speed.Adjustments) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(sp.Speed.Adjustments, "\n  "))
	}
	if sp.Analysis != "" {
		fmt.Fprintf(w, "\n%s\n", sp.Analysis)
	}
}
