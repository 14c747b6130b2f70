package archive

import (
	"log/slog"
	"strings"

	"github.com/jchantrell/doomarc/internal/lump"
)

// DirEntry is one WAD directory record.
type DirEntry struct {
	Offset int64
	Size   int64
	Name   string
}

// Group is a classified run of directory entries. Maps hold the header and
// every lump of the map; every other namespace holds a single entry.
type Group []DirEntry

// Name is the name of the group's first entry.
func (g Group) Name() string {
	return g[0].Name
}

// Classification is the result of sorting a WAD directory into namespaces.
type Classification struct {
	groups map[string][]Group
	// Unrecognized lists lumps that matched nothing and went to global.
	Unrecognized []string
	// Unterminated lists marker ranges that ran to the end of the directory.
	Unterminated []string
	// PNames is the patch table, when the WAD has one.
	PNames lump.PNames
}

// Groups returns the groups of an internal namespace.
func (c *Classification) Groups(ns string) []Group {
	return c.groups[ns]
}

// Internal WAD namespaces in listing order. maps and sounds are split by
// type and collapse to their public names in headers.
var wadNamespaces = []string{
	"acs", "colormaps", "flats", "graphics", "hires",
	"maps_doom", "maps_udmf", "maps_gwa",
	"music", "patches", "sprites",
	"sounds_digital", "sounds_pcspkr",
	"textures", "voices", "voxels", "global",
}

// Lumps that may follow THINGS in a Doom or Hexen format map, including
// appended GL nodes and port specific extras.
var mapLumps = []string{
	"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS", "SSECTORS",
	"NODES", "SECTORS", "REJECT", "BLOCKMAP", "BEHAVIOR", "LEAFS",
	"LIGHTS", "MACROS", "GL_*", "SCRIPT*",
}

// Lumps of a standalone GL node set (.gwa) after its GL_<map> header.
var glLumps = []string{"GL_LEVEL", "GL_VERT", "GL_SEGS", "GL_SSECT", "GL_NODES", "GL_PVS"}

// Marker prefixes. Doubled letters are the PWAD convention for the same
// namespace.
var markerNamespaces = map[string]string{
	"A": "acs", "AA": "acs",
	"C": "colormaps", "CC": "colormaps",
	"F": "flats", "FF": "flats",
	"HI": "hires",
	"S":  "sprites", "SS": "sprites",
	"P": "patches", "PP": "patches",
	"TX": "textures",
	"V":  "voices", "VV": "voices",
	"VX": "voxels",
}

type namePatterns struct {
	namespace string
	patterns  []string
}

// Name based fallback, first match wins.
var knownNames = []namePatterns{
	{"sounds_digital", []string{"DS*"}},
	{"sounds_pcspkr", []string{"DP*"}},
	{"music", []string{"D_*"}},
	{"graphics", []string{
		"TITLEPIC", "CWILV*", "WI*", "M_*", "INTERPIC", "BRDR*", "PFUB?",
		"ST*", "VICTORY2", "CREDIT", "END?", "BOSSBACK", "ENDPIC", "HELP",
		"BOX??", "AMMNUM?", "HELP*", "DIG*", "PRBOOM",
	}},
	{"patches", nil},
	{"global", []string{
		"PLAYPAL", "COLORMAP", "ENDOOM", "DEMO*", "TEXTURE*", "PNAMES",
		"GENMIDI", "DMXGUS*", "DBIGFONT", "DEHACKED",
	}},
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if match(p, name) {
			return true
		}
	}
	return false
}

// classifier consumes a WAD directory front to back. Entry order is the
// only grouping signal.
type classifier struct {
	dir    []DirEntry
	pos    int
	read   func(DirEntry) ([]byte, error)
	result *Classification
}

// Classify sorts a WAD directory into namespaces. read is used to load the
// PNAMES lump when one is found.
func Classify(dir []DirEntry, read func(DirEntry) ([]byte, error)) *Classification {
	c := &classifier{
		dir:    dir,
		read:   read,
		result: &Classification{groups: make(map[string][]Group)},
	}
	for c.pos < len(c.dir) {
		c.next()
	}
	c.duplicatePatches()
	return c.result
}

func (c *classifier) add(ns string, g Group) {
	c.result.groups[ns] = append(c.result.groups[ns], g)
}

func (c *classifier) peek(i int) (DirEntry, bool) {
	if c.pos+i >= len(c.dir) {
		return DirEntry{}, false
	}
	return c.dir[c.pos+i], true
}

func (c *classifier) secondIs(name string) bool {
	e, ok := c.peek(1)
	return ok && strings.EqualFold(e.Name, name)
}

func (c *classifier) next() {
	head := c.dir[c.pos]

	switch {
	case c.secondIs("THINGS"):
		c.pos++
		g := Group{head}
		g = append(g, c.takeWhile(mapLumps)...)
		c.add("maps_doom", g)

	case c.secondIs("TEXTMAP"):
		c.pos++
		g := Group{head}
		for c.pos < len(c.dir) {
			e := c.dir[c.pos]
			c.pos++
			g = append(g, e)
			if strings.EqualFold(e.Name, "ENDMAP") {
				break
			}
		}
		c.add("maps_udmf", g)

	case c.secondIs("GL_VERT"):
		c.pos++
		g := Group{head}
		g = append(g, c.takeWhile(glLumps)...)
		c.add("maps_gwa", g)

	default:
		if ns, prefix, ok := markerStart(head.Name); ok {
			c.pos++
			c.markerRange(ns, prefix)
			return
		}
		c.pos++
		c.byName(head)
	}
}

func (c *classifier) takeWhile(patterns []string) []DirEntry {
	start := c.pos
	for c.pos < len(c.dir) && matchAny(patterns, c.dir[c.pos].Name) {
		c.pos++
	}
	return c.dir[start:c.pos]
}

// markerStart recognises X_START markers with a known prefix.
func markerStart(name string) (ns, prefix string, ok bool) {
	upper := strings.ToUpper(name)
	if !strings.HasSuffix(upper, "_START") {
		return "", "", false
	}
	prefix, _, _ = strings.Cut(upper, "_")
	ns, ok = markerNamespaces[prefix]
	return ns, prefix, ok
}

// isMarkerEnd accepts the matching X_END, or the end marker of a synonym
// prefix (FF_START ... F_END is common in PWADs).
func isMarkerEnd(name, ns string) bool {
	upper := strings.ToUpper(name)
	prefix, ok := strings.CutSuffix(upper, "_END")
	if !ok {
		return false
	}
	return markerNamespaces[prefix] == ns
}

func (c *classifier) markerRange(ns, prefix string) {
	for c.pos < len(c.dir) {
		e := c.dir[c.pos]
		c.pos++
		if isMarkerEnd(e.Name, ns) {
			return
		}
		if e.Size > 0 {
			c.add(ns, Group{e})
		}
	}
	slog.Warn("Marker range has no end marker", "marker", prefix+"_START")
	c.result.Unterminated = append(c.result.Unterminated, prefix+"_START")
}

func (c *classifier) byName(e DirEntry) {
	for _, known := range knownNames {
		patterns := known.patterns
		if known.namespace == "patches" {
			if c.result.PNames.Contains(e.Name) {
				c.add("patches", Group{e})
				return
			}
			continue
		}
		if !matchAny(patterns, e.Name) {
			continue
		}
		if strings.EqualFold(e.Name, "PNAMES") {
			c.loadPNames(e)
		}
		c.add(known.namespace, Group{e})
		return
	}

	slog.Debug("Unrecognized lump, treating as global", "lump", e.Name)
	c.result.Unrecognized = append(c.result.Unrecognized, e.Name)
	c.add("global", Group{e})
}

func (c *classifier) loadPNames(e DirEntry) {
	data, err := c.read(e)
	if err != nil {
		slog.Warn("Failed to read PNAMES", "error", err)
		return
	}
	pnames, err := lump.DecodePNames(data)
	if err != nil {
		slog.Warn("Failed to decode PNAMES", "error", err)
		return
	}
	c.result.PNames = pnames
}

// duplicatePatches adds every directory entry named in PNAMES to patches,
// since sprites and graphics can double as texture patches. Entries already
// classified as patches are not added twice.
func (c *classifier) duplicatePatches() {
	if len(c.result.PNames) == 0 {
		return
	}
	have := make(map[DirEntry]bool)
	for _, g := range c.result.groups["patches"] {
		have[g[0]] = true
	}
	for _, e := range c.dir {
		if have[e] || !c.result.PNames.Contains(e.Name) {
			continue
		}
		have[e] = true
		c.add("patches", Group{e})
	}
}
