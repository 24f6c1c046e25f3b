package main

import (
	"errors"
	"fmt"
	"strings"

	"pokedex/explorer/internal/catalog"
	"pokedex/explorer/internal/service"

	"github.com/spf13/cobra"
)

var sessionID string

var searchCmd = &cobra.Command{
	Use:   "search <name|id>",
	Short: "Show a pokemon with its evolution chain",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionID != "" {
			if err := app.ConnectRedis(cmd.Context()); err != nil {
				return err
			}
		} else {
			sessionID = "cli"
		}

		result, err := app.NewSession(sessionID).Search(cmd.Context(), strings.Join(args, " "))
		if errors.Is(err, service.ErrStaleResult) {
			// A newer search for this session already answered.
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, result)
		}

		p := result.Pokemon
		fmt.Fprintf(out, "#%d %s\n", p.ID, result.Species.LocalizedName("en"))

		types := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			types = append(types, t.Type.Name)
		}
		fmt.Fprintf(out, "Types:  %s\n", strings.Join(types, ", "))
		fmt.Fprintf(out, "Height: %.1f m  Weight: %.1f kg\n", float64(p.Height)/10, float64(p.Weight)/10)
		if region, ok := catalog.RegionOf(result.Species.ID); ok {
			fmt.Fprintf(out, "Region: %s (generation %d)\n", region.Name, region.Generation)
		}
		if text := result.Species.FlavorText("en"); text != "" {
			fmt.Fprintf(out, "\n%s\n", strings.Join(strings.Fields(text), " "))
		}

		fmt.Fprintln(out, "\nBase stats:")
		for _, s := range p.Stats {
			fmt.Fprintf(out, "  %-16s %3d\n", s.Stat.Name, s.BaseStat)
		}

		fmt.Fprintln(out, "\nEvolution:")
		switch {
		case result.EvolutionErr != nil:
			fmt.Fprintln(out, "  Evolution data unavailable")
		case len(result.Evolution) == 0:
			fmt.Fprintln(out, "  No evolution data")
		default:
			writeStages(out, result.Evolution)
		}

		if len(result.MegaEvolutions) > 0 {
			fmt.Fprintln(out, "\nMega evolutions:")
			for _, mega := range result.MegaEvolutions {
				fmt.Fprintf(out, "  %-20s %-16s total %d\n", mega.Name, mega.MegaStone, mega.Stats.Total())
				for _, c := range catalog.CompareStats(p, mega) {
					fmt.Fprintf(out, "    %-16s %3d -> %3d (%+d%%)\n", c.Stat, c.Normal, c.Mega, c.Percentage)
				}
			}
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&sessionID, "session", "", "Share search ordering with other processes through Redis")
}
