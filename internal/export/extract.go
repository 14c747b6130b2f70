package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/info"
	"github.com/jchantrell/doomarc/internal/lump"
)

// ExtractOptions control Extract.
type ExtractOptions struct {
	// WithIWad includes the IWAD when PWADs are present.
	WithIWad bool
	// Modernize converts images to PNG and sounds to WAV, replaces
	// TEXTUREx and PNAMES with a TEXTURES lump and writes composite
	// renders. With the IWAD included it also writes a renamed IWADINFO.
	Modernize bool
	// TextureHacks renders composites from the corrected vanilla texture
	// tables. textures.txt always keeps the tables as shipped.
	TextureHacks bool
}

// Extract writes every visible lump of the selected readers to
// <output>/<namespace>/<name>.<ext>, global lumps at the root. Later
// archives overwrite earlier ones. Lumps that fail to read or convert are
// logged and counted; only write failures abort.
func (e *Exporter) Extract(ctx context.Context, chain *archive.Archives, opts ExtractOptions, progress ProgressCallback) (*Summary, error) {
	readers, pwadOnly := Selection(chain, opts.WithIWad)
	selected := archive.NewArchives(readers...)

	var pal *lump.Palette
	if opts.Modernize {
		pal = loadPalette(chain)
	}

	if err := e.reset(); err != nil {
		return nil, err
	}

	headers := lastByPath(selected.Headers("*", "*"))
	if opts.Modernize {
		headers = withoutTextureTables(headers)
	}

	summary := &Summary{Path: e.outputDir}
	var (
		readMu sync.Mutex
		mu     sync.Mutex
		done   int
	)
	// written < 0 marks a lump shadowed by a later archive.
	record := func(h archive.LumpHeader, written int64, converted, failed bool) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if failed {
			summary.Failed++
		} else if written >= 0 {
			summary.Written++
			summary.Bytes += written
		}
		if converted {
			summary.Converted++
		}
		if progress != nil {
			progress(done, len(headers), h.Name)
		}
	}

	outputs := newOutputClaims()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, h := range headers {
		i, h := i, h
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// readers are not safe for concurrent use
			readMu.Lock()
			data, err := archive.ReadLump(h)
			readMu.Unlock()
			if err != nil {
				slog.Warn("Failed to read lump", "lump", h.Name, "archive", h.Owner.Path(), "error", err)
				record(h, 0, false, true)
				return nil
			}

			out := h
			converted := false
			if opts.Modernize {
				data, out.Extension, converted = modernize(h, data, pal)
			}

			// Conversion can move a lump onto the path of a later
			// archive's file; the later archive keeps it.
			wrote, err := outputs.write(out.Path(), i, func() error {
				return e.writeFile(out.Path(), data)
			})
			if err != nil {
				return err
			}
			if !wrote {
				slog.Debug("Lump shadowed by a later archive", "lump", h.Name, "archive", h.Owner.Path(), "output", out.Path())
				record(h, -1, false, false)
				return nil
			}
			slog.Debug("Extracted lump", "lump", h.Name, "output", out.Path())
			record(h, int64(len(data)), converted, false)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extracting lumps: %w", err)
	}

	if opts.Modernize {
		if err := e.writeTextures(chain, selected, pal, opts.TextureHacks, summary); err != nil {
			return nil, err
		}
		if !pwadOnly {
			if err := e.writeIwadinfo(chain); err != nil {
				return nil, err
			}
		}
	}

	slog.Info("Extraction complete",
		"path", e.outputDir,
		"files", humanize.Comma(int64(summary.Written)),
		"converted", humanize.Comma(int64(summary.Converted)),
		"failed", summary.Failed,
		"size", humanize.Bytes(uint64(summary.Bytes)))
	return summary, nil
}

func modernize(h archive.LumpHeader, data []byte, pal *lump.Palette) ([]byte, string, bool) {
	if out, ok := convertImage(h, data, pal); ok {
		return out, "png", true
	}
	return convertSound(h, data)
}

// lastByPath keeps the last header for each output path, in the order
// those last headers appear.
func lastByPath(headers []archive.LumpHeader) []archive.LumpHeader {
	last := make(map[string]int, len(headers))
	for i, h := range headers {
		last[h.Path()] = i
	}
	out := make([]archive.LumpHeader, 0, len(last))
	for i, h := range headers {
		if last[h.Path()] == i {
			out = append(out, h)
		}
	}
	return out
}

// outputClaims serializes writes to the same output path and lets the
// highest chain position win regardless of completion order.
type outputClaims struct {
	mu    sync.Mutex
	paths map[string]*outputClaim
}

type outputClaim struct {
	mu     sync.Mutex
	winner int
}

func newOutputClaims() *outputClaims {
	return &outputClaims{paths: make(map[string]*outputClaim)}
}

// write runs fn unless a header at a later position already wrote path.
func (c *outputClaims) write(path string, position int, fn func() error) (bool, error) {
	key := strings.ToLower(path)
	c.mu.Lock()
	claim, ok := c.paths[key]
	if !ok {
		claim = &outputClaim{winner: -1}
		c.paths[key] = claim
	}
	c.mu.Unlock()

	claim.mu.Lock()
	defer claim.mu.Unlock()
	if claim.winner > position {
		return false, nil
	}
	if err := fn(); err != nil {
		return false, err
	}
	claim.winner = position
	return true, nil
}

func isTextureTable(name string) bool {
	switch strings.ToLower(name) {
	case "texture1", "texture2", "pnames":
		return true
	}
	return false
}

func withoutTextureTables(headers []archive.LumpHeader) []archive.LumpHeader {
	out := headers[:0:0]
	for _, h := range headers {
		if !isTextureTable(h.Name) {
			out = append(out, h)
		}
	}
	return out
}

// writeTextures replaces TEXTUREx and PNAMES with textures.txt and renders
// each texture under composite/.
func (e *Exporter) writeTextures(chain, selected *archive.Archives, pal *lump.Palette, hacks bool, summary *Summary) error {
	if !selected.HasLump("texture1", "*") || !selected.HasLump("pnames", "*") {
		return nil
	}

	textures, err := textureDefinitions(selected, false)
	if err != nil {
		slog.Warn("Could not decode texture tables", "error", err)
		summary.Failed++
		return nil
	}
	rendered := textures
	if hacks {
		if rendered, err = textureDefinitions(selected, true); err != nil {
			slog.Warn("Could not decode texture tables", "hacks", true, "error", err)
			summary.Failed++
			return nil
		}
	}

	var defs strings.Builder
	for i, t := range textures {
		defs.WriteString(t.String())
		defs.WriteString("\n")

		if pal == nil {
			continue
		}
		png, err := renderComposite(rendered[i], chain, pal)
		if err != nil {
			slog.Info("Could not render texture", "texture", t.Name, "error", err)
			summary.Failed++
			continue
		}
		if err := e.writeFile(compositePath(t), png); err != nil {
			return err
		}
	}

	if err := e.writeFile("textures.txt", []byte(defs.String())); err != nil {
		return err
	}
	slog.Info("Wrote texture definitions", "textures", len(textures))
	return nil
}

// writeIwadinfo writes the identified IWad record under a new name so the
// output can run as a standalone IWAD next to the original.
func (e *Exporter) writeIwadinfo(chain *archive.Archives) error {
	readers := chain.Readers()
	if len(readers) < 2 {
		return nil
	}
	id, err := archive.IdentifyIWad(readers[0], readers[1])
	if err != nil {
		slog.Warn("Could not identify iwad, no iwadinfo written", "error", err)
		return nil
	}

	id = id.Clone()
	id.Set("Name", info.String(id.Str("Name")+" Modernized"))
	return e.writeFile("iwadinfo.txt", []byte(info.WrapIWad(id).String()))
}
