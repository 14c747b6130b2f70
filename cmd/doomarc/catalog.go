package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/database"
	"github.com/jchantrell/doomarc/internal/utils"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Record every visible lump of a chain in a SQLite database",
	Long: `Catalog hashes every lump visible in the chain and stores one row per
lump in the lumps table of the database, replacing any earlier catalog.
Use the query command to inspect it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		chain, _, err := openChain(iwadPath, pwadPaths)
		if err != nil {
			return err
		}
		defer closeChain(chain)

		db, err := database.NewDatabase(database.DefaultDatabaseOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		progress := utils.NewProgress("catalog", !noProgress)
		summary, err := database.Catalog(cmd.Context(), db, chain, database.DefaultBulkInsertOptions(), progress.Update)
		progress.Finish()
		if err != nil {
			return fmt.Errorf("writing catalog: %w", err)
		}

		elapsed := time.Since(start)
		slog.Info("Catalog complete",
			"duration", utils.Duration(elapsed),
			"rate", utils.Rate(summary.Rows, elapsed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
