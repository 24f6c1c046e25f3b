package main

import (
	"fmt"

	"pokedex/explorer/internal/catalog"

	"github.com/spf13/cobra"
)

var (
	listOffset int
	listLimit  int
	listRegion string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pokemon page by page or by region",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if listRegion != "" && listRegion != catalog.RegionAll {
			pokemon, err := app.Explorer.LoadRegion(cmd.Context(), listRegion)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(out, pokemon)
			}
			for _, p := range pokemon {
				fmt.Fprintf(out, "#%-4d %s\n", p.ID, displayName(p.Name))
			}
			return nil
		}

		page, err := app.Explorer.ListPage(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, page)
		}

		writeListPage(out, page, listOffset)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Index of the first pokemon")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Page size (max 100)")
	listCmd.Flags().StringVar(&listRegion, "region", catalog.RegionAll, "Load a whole region instead of a page")
}
