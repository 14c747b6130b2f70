// Package archive reads Doom engine resource containers (WAD files, PK3
// zips and plain directories) and composes them into override chains.
package archive

import (
	"path"
	"strings"
)

// Namespaces is the closed set of public lump namespaces.
var Namespaces = []string{
	"acs", "colormaps", "flats", "graphics", "hires", "maps", "music",
	"patches", "sprites", "sounds", "textures", "voices", "voxels", "global",
}

// Handle locates lump data inside the reader that produced it. Its concrete
// type is private to that reader.
type Handle any

// LumpHeader describes one lump visible through a reader.
type LumpHeader struct {
	Name      string
	Namespace string
	Extension string
	// Type refines the namespace: doom, udmf or gwa for maps, digital or
	// pcspkr for WAD sounds.
	Type   string
	Filter string
	Size   int64
	Handle Handle
	Owner  Reader
}

// Key is the case folded name used for lookups.
func (h LumpHeader) Key() string {
	return strings.ToLower(h.Name)
}

// File is the header's conventional file name, name.ext.
func (h LumpHeader) File() string {
	name := h.Key()
	if h.Extension != "" {
		name += "." + h.Extension
	}
	return name
}

// Path is where the lump lives in an extracted tree. Global lumps sit at
// the root.
func (h LumpHeader) Path() string {
	if h.Namespace == "global" {
		return h.File()
	}
	return path.Join(h.Namespace, h.File())
}

// ReadLump reads a header's data from its owning reader.
func ReadLump(h LumpHeader) ([]byte, error) {
	return h.Owner.Read(h.Handle)
}

// Context is the game a chain was identified as. Game is the dotted filter
// string (e.g. doom.id.doom2.commercial), GameType the engine game family
// (e.g. doom, heretic).
type Context struct {
	Game     string
	GameType string
}

func (c Context) IsZero() bool {
	return c == Context{}
}

// Reader is implemented by every archive type. Readers are not safe for
// concurrent use.
type Reader interface {
	// Path is the file or directory the reader was opened from.
	Path() string
	// Headers lists lumps whose name and namespace match the globs,
	// skipping lumps filtered out for the current context.
	Headers(nameGlob, namespaceGlob string) []LumpHeader
	Read(h Handle) ([]byte, error)
	// Lookup returns the data of the last lump named name in any
	// namespace, or nil when there is none.
	Lookup(name string) ([]byte, error)
	HasLump(nameGlob, namespaceGlob string) bool
	SetContext(ctx Context)
	Context() Context
	Close() error
}

// Namespaced maps namespace then lump key to the last header for it.
type Namespaced map[string]map[string]LumpHeader

// NamespacesOf builds the last-wins namespace view of a reader.
func NamespacesOf(r Reader) Namespaced {
	out := make(Namespaced, len(Namespaces))
	for _, ns := range Namespaces {
		out[ns] = make(map[string]LumpHeader)
	}
	for _, h := range r.Headers("*", "*") {
		if _, ok := out[h.Namespace]; !ok {
			out[h.Namespace] = make(map[string]LumpHeader)
		}
		out[h.Namespace][h.Key()] = h
	}
	return out
}

func lookup(r Reader, name string) ([]byte, error) {
	headers := r.Headers(name, "*")
	if len(headers) == 0 {
		return nil, nil
	}
	return r.Read(headers[len(headers)-1].Handle)
}

// match is a case-insensitive shell glob. Bad patterns match nothing.
func match(pattern, name string) bool {
	ok, err := path.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && ok
}
