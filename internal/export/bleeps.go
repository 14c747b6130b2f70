package export

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jchantrell/doomarc/internal/archive"
	"github.com/jchantrell/doomarc/internal/lump"
)

// minNameSimilarity is the lowest similarity at which a PC speaker sound
// is renamed to a digital sound name.
const minNameSimilarity = 0.6

// Bleeps renders the PC speaker sounds of each chain's IWAD and PWADs to
// WAV, renames each after the digital sound it stands in for and writes
// them as filter/<game>/sounds/<name>.wav so one package serves every
// chain. Each chain must already be identified.
func (e *Exporter) Bleeps(chains []*archive.Archives) (*Summary, error) {
	if err := e.reset(); err != nil {
		return nil, err
	}

	var namespaces []map[string]*Entry
	for _, chain := range chains {
		ns, err := bleepsNamespace(chain)
		if err != nil {
			return nil, err
		}
		namespaces = append(namespaces, ns)
	}

	summary := &Summary{Path: e.outputDir}
	for _, entry := range ConsolidateFilters(namespaces) {
		if err := e.writeFile(entry.Path("sounds"), entry.Data); err != nil {
			return nil, err
		}
		summary.Written++
		summary.Converted++
		summary.Bytes += int64(len(entry.Data))
	}
	slog.Info("Bleeps complete", "path", e.outputDir, "sounds", summary.Written)
	return summary, nil
}

func bleepsNamespace(chain *archive.Archives) (map[string]*Entry, error) {
	game := chain.Context().Game
	slog.Info("Processing chain", "game", game)

	readers := chain.Readers()
	pwads := archive.NewArchives(readers[min(1, len(readers)):]...)

	speaker := make(map[string]*Entry)
	var digital []string
	for _, h := range pwads.Headers("*", "sounds") {
		if h.Extension != "lmp" {
			continue
		}
		data, err := archive.ReadLump(h)
		if err != nil {
			return nil, fmt.Errorf("reading sound %s: %w", h.Name, err)
		}
		snd, err := lump.DecodeDMX(data)
		if err != nil {
			slog.Debug("Skipping sound", "lump", h.Name, "error", err)
			continue
		}
		if !snd.IsPCSpeaker() {
			digital = append(digital, strings.ToUpper(h.Name))
			continue
		}

		samples, rate := snd.PCM()
		wav, err := EncodeWAV(samples, rate)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", h.Name, err)
		}
		speaker[strings.ToUpper(h.Name)] = &Entry{
			Name:      h.Name,
			Filter:    game,
			Extension: "wav",
			Data:      wav,
		}
	}

	names := make([]string, 0, len(speaker))
	for name := range speaker {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]*Entry, len(speaker))
	for _, name := range names {
		match, ok := MatchDigitalName(name, digital)
		if !ok {
			slog.Info("No digital sound matches, skipping", "lump", name)
			continue
		}
		entry := speaker[name]
		entry.Name = match
		out[strings.ToLower(match)] = entry
	}
	return out, nil
}

// MatchDigitalName finds the digital sound a PC speaker sound replaces. The
// DP prefix swapped for DS is tried first, then the closest name by edit
// distance if it is similar enough.
func MatchDigitalName(name string, digital []string) (string, bool) {
	upper := strings.ToUpper(name)
	if rest, ok := strings.CutPrefix(upper, "DP"); ok {
		for _, d := range digital {
			if strings.EqualFold(d, "DS"+rest) {
				return d, true
			}
		}
	}

	best, bestScore := "", 0.0
	for _, d := range digital {
		if score := similarity(upper, strings.ToUpper(d)); score > bestScore {
			best, bestScore = d, score
		}
	}
	if bestScore < minNameSimilarity {
		return "", false
	}
	return best, true
}

// similarity is 1 for equal strings, falling towards 0 as the edit
// distance approaches the longer length.
func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
