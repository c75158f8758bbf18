package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/spf13/cobra"
)

func luresCmd(catalogPath *string) *cobra.Command {
	var zone, species string
	cmd := &cobra.Command{
		Use:   "lures",
		Short: "List the lures of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd.Context(), *catalogPath)
			if err != nil {
				return err
			}

			var target model.Species
			if species != "" {
				target, _ = model.ParseSpecies(species)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tCONTRAST\tSPEED\tDEPTH\tZONES\tSPECIES")
			shown := 0
			for i := range cat.Lures {
				l := &cat.Lures[i]
				if zone != "" && !slices.Contains(l.Zones, model.Zone(zone)) {
					continue
				}
				if target != "" && !l.Targets(target) {
					continue
				}
				shown++
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					l.ID, orDash(string(l.Kind)), l.Contrast, rangeText(l.Speed, "kn"), rangeText(l.Depth, "m"),
					joinOrDash(l.Zones), joinOrDash(l.Species))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s of %s lures\n", humanize.Comma(int64(shown)), humanize.Comma(int64(len(cat.Lures))))
			return nil
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "only lures declaring this zone")
	cmd.Flags().StringVar(&species, "species", "", "only lures targeting this species")
	return cmd
}

func rangeText(r *model.Range, unit string) string {
	if r == nil {
		return "-"
	}
	return humanize.Ftoa(r.Min) + "-" + humanize.Ftoa(r.Max) + " " + unit
}

func joinOrDash[T ~string](vs []T) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
