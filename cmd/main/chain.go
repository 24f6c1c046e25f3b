package main

import (
	"fmt"
	"strconv"

	"pokedex/explorer/internal/domain"

	"github.com/spf13/cobra"
)

var (
	chainStored bool
	statusFrom  int
	statusTo    int
)

var chainCmd = &cobra.Command{
	Use:   "chain <id>",
	Short: "Show one flattened evolution chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := strconv.Atoi(args[0])
		if err != nil || chainID <= 0 {
			return fmt.Errorf("invalid chain id %q", args[0])
		}

		var stages []domain.EvolutionStage
		if chainStored {
			if err := app.ConnectDatabase(cmd.Context()); err != nil {
				return err
			}
			stages, err = app.Repository.GetChain(cmd.Context(), chainID)
		} else {
			stages, err = app.Explorer.Chain(cmd.Context(), chainID)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, stages)
		}
		fmt.Fprintf(out, "Evolution chain %d:\n", chainID)
		writeStages(out, stages)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show export progress and pending stream messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("from") {
			statusFrom = cfg.Export.FromChain
		}
		if !cmd.Flags().Changed("to") {
			statusTo = cfg.Export.ToChain
		}

		status, err := app.Status(cmd.Context(), statusFrom, statusTo)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, status)
		}
		fmt.Fprintf(out, "Chains %d..%d, last enqueued: %d\n", status.FromChain, status.ToChain, status.LastEnqueuedChain)
		for taskType, pending := range status.Pending {
			fmt.Fprintf(out, "Pending %-16s %d\n", taskType+":", pending)
		}
		return nil
	},
}

func init() {
	chainCmd.Flags().BoolVar(&chainStored, "stored", false, "Read the exported copy from Postgres")

	statusCmd.Flags().IntVar(&statusFrom, "from", 1, "First chain id of the export range")
	statusCmd.Flags().IntVar(&statusTo, "to", 549, "Last chain id of the export range")
}
