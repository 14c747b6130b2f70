// Package export writes the lumps of an archive chain to disk, converting
// legacy formats when asked, and packages the result.
package export

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/jchantrell/doomarc/internal/archive"
)

// Exporter writes lump data under an output directory.
type Exporter struct {
	fsys      afero.Fs
	outputDir string
	workers   int
}

// NewExporter creates an exporter rooted at outputDir. workers bounds the
// number of lumps converted at once; values below one mean NumCPU.
func NewExporter(fsys afero.Fs, outputDir string, workers int) *Exporter {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Exporter{
		fsys:      fsys,
		outputDir: outputDir,
		workers:   workers,
	}
}

// ProgressCallback is called to report export progress
type ProgressCallback func(current int, total int, description string)

// Summary reports what an export wrote.
type Summary struct {
	Path      string
	Written   int
	Converted int
	Failed    int
	Bytes     int64
}

func (e *Exporter) OutputDir() string {
	return e.outputDir
}

// reset clears the output directory, as every run produces a fresh tree.
func (e *Exporter) reset() error {
	if err := e.fsys.RemoveAll(e.outputDir); err != nil {
		return fmt.Errorf("clearing output directory: %w", err)
	}
	if err := e.fsys.MkdirAll(e.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// writeFile writes data at the slash separated path rel under the output
// directory.
func (e *Exporter) writeFile(rel string, data []byte) error {
	full := filepath.Join(e.outputDir, filepath.FromSlash(rel))
	if err := e.fsys.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := afero.WriteFile(e.fsys, full, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", full, err)
	}
	return nil
}

// Selection returns the readers an extraction covers. With PWADs present
// only they are extracted unless withIWad is set; otherwise the IWAD and
// everything after it. pwadOnly reports which case applied.
func Selection(chain *archive.Archives, withIWad bool) (readers []archive.Reader, pwadOnly bool) {
	all := chain.Readers()
	if len(all) > 2 && !withIWad {
		return all[2:], true
	}
	return all[min(1, len(all)):], false
}

// DefaultName joins the base names of readers with underscores and adds
// suffix, e.g. doom2_sigil_extracted.
func DefaultName(readers []archive.Reader, suffix string) string {
	names := make([]string, 0, len(readers)+1)
	for _, r := range readers {
		base := path.Base(filepath.ToSlash(r.Path()))
		names = append(names, strings.TrimSuffix(base, path.Ext(base)))
	}
	if suffix != "" {
		names = append(names, suffix)
	}
	return strings.Join(names, "_")
}
