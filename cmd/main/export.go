package main

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	exportFrom    int
	exportTo      int
	exportWorkers int
	exportFollow  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Flatten evolution chains into Postgres through Redis streams",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("from") {
			exportFrom = cfg.Export.FromChain
		}
		if !cmd.Flags().Changed("to") {
			exportTo = cfg.Export.ToChain
		}
		if !cmd.Flags().Changed("workers") {
			exportWorkers = cfg.Export.Workers
		}

		if err := app.ConnectStorage(cmd.Context()); err != nil {
			return err
		}

		log.Infof("🚀 Exporting evolution chains %d..%d with %d workers", exportFrom, exportTo, exportWorkers)

		err := app.RunExport(cmd.Context(), exportFrom, exportTo, exportWorkers, exportFollow)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		log.Info("✅ Export finished")
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportFrom, "from", 1, "First evolution chain id")
	exportCmd.Flags().IntVar(&exportTo, "to", 549, "Last evolution chain id")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 4, "Workers for the export stream")
	exportCmd.Flags().BoolVar(&exportFollow, "follow", false, "Keep workers running after the streams drain")
}
