package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/info"
)

// fallbackEngine is used when neither config nor flags name an engine
// archive.
const fallbackEngine = "iwads/gzdoom.pk3"

var osFs = afero.NewOsFs()

func resolveEngine() (string, error) {
	if cfg.Engine != "" {
		return cfg.Engine, nil
	}
	if ok, _ := afero.Exists(osFs, fallbackEngine); ok {
		slog.Debug("Using fallback engine archive", "path", fallbackEngine)
		return fallbackEngine, nil
	}
	return "", fmt.Errorf("no engine archive: set engine in the config file or pass --engine")
}

// openChain opens engine, iwad and pwads in that order and identifies the
// IWAD. Readers opened before a failure are closed.
func openChain(iwad string, pwads []string) (*archive.Archives, *info.Record, error) {
	if iwad == "" {
		return nil, nil, fmt.Errorf("--iwad is required")
	}
	engine, err := resolveEngine()
	if err != nil {
		return nil, nil, err
	}

	paths := append([]string{engine, iwad}, pwads...)
	readers := make([]archive.Reader, 0, len(paths))
	for _, p := range paths {
		r, err := archive.Open(osFs, p)
		if err != nil {
			closeAll(readers)
			return nil, nil, err
		}
		slog.Debug("Opened archive", "path", p)
		readers = append(readers, r)
	}

	chain := archive.NewArchives(readers...)
	id, err := chain.Identify()
	if err != nil {
		chain.CloseAll()
		return nil, nil, fmt.Errorf("identifying %s: %w", iwad, err)
	}
	return chain, id, nil
}

func closeAll(readers []archive.Reader) {
	var errs []error
	for _, r := range readers {
		errs = append(errs, r.Close())
	}
	if err := errors.Join(errs...); err != nil {
		slog.Warn("Failed to close archives", "error", err)
	}
}

func closeChain(chain *archive.Archives) {
	if err := chain.CloseAll(); err != nil {
		slog.Warn("Failed to close archives", "error", err)
	}
}
