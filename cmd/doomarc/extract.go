package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/export"
	"github.com/jchantrell/doomarc/internal/utils"
)

// packageExclude lists output directories left out of generated packages.
// Composites only illustrate the rendered textures.
var packageExclude = []string{"composite"}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the lumps of an archive chain to disk",
	Long: `Extract writes the lumps of the chain to <output>/<namespace>/<name>.<ext>.

When PWADs are given only they are extracted unless --with-iwad is set.
Later archives overwrite earlier ones. With --modernize images become PNG,
DMX sounds become WAV, the texture tables become a TEXTURES lump with
rendered composites under composite/, and an included IWAD gets its own
IWADINFO so the result runs as a standalone IPK3.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		modernize, err := cmd.Flags().GetBool("modernize")
		if err != nil {
			return fmt.Errorf("failed to get modernize flag: %w", err)
		}
		withIWad, err := cmd.Flags().GetBool("with-iwad")
		if err != nil {
			return fmt.Errorf("failed to get with-iwad flag: %w", err)
		}
		dir, err := cmd.Flags().GetString("path")
		if err != nil {
			return fmt.Errorf("failed to get path flag: %w", err)
		}
		pack, err := cmd.Flags().GetBool("package")
		if err != nil {
			return fmt.Errorf("failed to get package flag: %w", err)
		}

		chain, _, err := openChain(iwadPath, pwadPaths)
		if err != nil {
			return err
		}
		defer closeChain(chain)

		if dir == "" {
			suffix := "extracted"
			if modernize {
				suffix = "modernized"
			}
			readers, _ := export.Selection(chain, withIWad)
			dir = filepath.Join(cfg.Output, export.DefaultName(readers, suffix))
		}

		slog.Info("Starting extract...", "path", dir, "modernize", modernize, "with_iwad", withIWad)

		progress := utils.NewProgress("extract", !noProgress)
		exporter := export.NewExporter(osFs, dir, cfg.Workers)
		summary, err := exporter.Extract(cmd.Context(), chain, export.ExtractOptions{
			WithIWad:     withIWad,
			Modernize:    modernize,
			TextureHacks: cfg.Hacks,
		}, progress.Update)
		progress.Finish()
		if err != nil {
			return fmt.Errorf("extracting: %w", err)
		}

		if pack {
			if err := packageOutput(summary.Path); err != nil {
				return err
			}
		}

		elapsed := time.Since(start)
		slog.Info("Extract complete",
			"duration", utils.Duration(elapsed),
			"rate", utils.Rate(summary.Written, elapsed),
			"failed", summary.Failed)
		return nil
	},
}

// packageOutput zips dir into <output>/<base of dir>.pk3, or .ipk3 when it
// carries an IWADINFO.
func packageOutput(dir string) error {
	zipPath := filepath.Join(cfg.Output, filepath.Base(dir)+export.PackageExtension(osFs, dir))
	if err := export.Package(osFs, dir, zipPath, packageExclude); err != nil {
		return fmt.Errorf("packaging %s: %w", dir, err)
	}
	slog.Info("Generated package", "path", zipPath)
	return nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Bool("modernize", false, "convert legacy formats to PNG, WAV and TEXTURES")
	extractCmd.Flags().Bool("with-iwad", false, "include the IWAD when PWADs are given")
	extractCmd.Flags().String("path", "", "directory to extract to (default <output>/<archives>_extracted)")
	extractCmd.Flags().Bool("package", false, "zip the extracted directory into a PK3 next to it")
}
