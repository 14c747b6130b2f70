package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/config"
)

var (
	cfg     *config.Config
	cfgFile string

	enginePath string
	iwadPath   string
	pwadPaths  []string
	outputDir  string
	dbPath     string
	workers    int
	noHacks    bool
	logLevel   string
	logFormat  string
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "doomarc",
	Short: "Doom archive inspection and extraction tool",
	Long: `doomarc reads Doom engine archives (WAD, PK3, PK7 and plain directories)
and layers them into a chain: the engine resource archive, an IWAD, then any
PWADs, each overriding the ones before it.

The chain can be listed, identified against the engine's IWADINFO, extracted
to disk with legacy formats converted to PNG and WAV, turned into a PC
speaker sound package, or cataloged into a queryable SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cmd.Flags().Changed("engine") {
			cfg.Engine = enginePath
		}
		if cmd.Flags().Changed("output") {
			cfg.Output = outputDir
		}
		if cmd.Flags().Changed("database") {
			cfg.Database = dbPath
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
		if cmd.Flags().Changed("no-hacks") {
			cfg.Hacks = !noHacks
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}

		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelInfo
		}

		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})
		}
		slog.SetDefault(slog.New(handler))

		slog.Debug("Configuration",
			"engine", cfg.Engine,
			"output", cfg.Output,
			"database", cfg.Database,
			"workers", cfg.Workers,
			"hacks", cfg.Hacks,
			"log_level", cfg.LogLevel,
			"log_format", cfg.LogFormat)

		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is doomarc.yaml in home or pwd)")
	rootCmd.PersistentFlags().StringVar(&enginePath, "engine", "", "engine resource archive, e.g. gzdoom.pk3")
	rootCmd.PersistentFlags().StringVar(&iwadPath, "iwad", "", "IWAD archive (WAD, IPK3, PK3 or directory)")
	rootCmd.PersistentFlags().StringArrayVar(&pwadPaths, "pwad", nil, "PWAD archive loaded after the IWAD (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output root directory")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "catalog database file path")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "number of lumps converted in parallel")
	rootCmd.PersistentFlags().BoolVar(&noHacks, "no-hacks", false, "render composites from the texture tables as shipped")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}
