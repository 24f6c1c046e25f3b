package main

import (
	"fmt"

	"pokedex/explorer/internal/catalog"

	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Show the regions that can be passed to list --region",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		regions := catalog.Regions()
		if jsonOutput {
			return writeJSON(out, regions)
		}

		for _, r := range regions {
			fmt.Fprintf(out, "%-8s gen %d  #%d-#%d  %s\n", r.Key, r.Generation, r.StartID, r.EndID, r.Description)
		}
		return nil
	},
}
