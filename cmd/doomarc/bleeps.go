package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/export"
)

var bleepsCmd = &cobra.Command{
	Use:   "bleeps",
	Short: "Build a package replacing sounds with their PC speaker versions",
	Long: `Bleeps renders the PC speaker sounds of every chain to WAV and names
each after the digital sound it replaces. Sounds shared by several IWADs are
filtered by the common part of their game filters, so one package serves
every chain given.

Each --chain is a comma-separated list: the IWAD followed by its PWADs.
Without --chain the --iwad and --pwad flags form the only chain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := cmd.Flags().GetStringArray("chain")
		if err != nil {
			return fmt.Errorf("failed to get chain flag: %w", err)
		}
		dir, err := cmd.Flags().GetString("path")
		if err != nil {
			return fmt.Errorf("failed to get path flag: %w", err)
		}
		noPk3, err := cmd.Flags().GetBool("no-pk3")
		if err != nil {
			return fmt.Errorf("failed to get no-pk3 flag: %w", err)
		}

		chainPaths := parseChainGroups(groups)
		if len(chainPaths) == 0 {
			chainPaths = [][]string{append([]string{iwadPath}, pwadPaths...)}
		}

		var chains []*archive.Archives
		defer func() {
			for _, c := range chains {
				closeChain(c)
			}
		}()
		for _, paths := range chainPaths {
			chain, _, err := openChain(paths[0], paths[1:])
			if err != nil {
				return err
			}
			chains = append(chains, chain)
		}

		if dir == "" {
			var readers []archive.Reader
			for _, c := range chains {
				readers = append(readers, c.Readers()[1:]...)
			}
			dir = filepath.Join(cfg.Output, export.DefaultName(readers, "bleeps"))
		}

		summary, err := export.NewExporter(osFs, dir, cfg.Workers).Bleeps(chains)
		if err != nil {
			return fmt.Errorf("building bleeps: %w", err)
		}

		if !noPk3 {
			return packageOutput(summary.Path)
		}
		slog.Info("Skipping package", "path", summary.Path)
		return nil
	},
}

// parseChainGroups splits each comma-separated group into paths, dropping
// blanks and empty groups.
func parseChainGroups(groups []string) [][]string {
	var chains [][]string
	for _, g := range groups {
		var paths []string
		for _, p := range strings.Split(g, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			chains = append(chains, paths)
		}
	}
	return chains
}

func init() {
	rootCmd.AddCommand(bleepsCmd)
	bleepsCmd.Flags().StringArray("chain", nil, "IWAD and PWADs of one chain, comma-separated (repeatable)")
	bleepsCmd.Flags().String("path", "", "directory to write to (default <output>/<archives>_bleeps)")
	bleepsCmd.Flags().Bool("no-pk3", false, "do not zip the result into a PK3")
}
