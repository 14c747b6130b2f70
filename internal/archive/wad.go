package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/jchantrell/doomarc/internal/lump"
)

const (
	wadHeaderSize = 12
	wadEntrySize  = 16
)

// Wad reads an IWAD or PWAD file.
type Wad struct {
	path   string
	file   afero.File
	size   int64
	iwad   bool
	dir    []DirEntry
	groups *Classification
	ctx    Context
}

// wadLump and wadMap are the handle types of a Wad.
type wadLump struct{ entry DirEntry }

type wadMap struct{ entries Group }

// OpenWad opens a WAD file and classifies its directory.
func OpenWad(fsys afero.Fs, path string) (*Wad, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	w := &Wad{path: path, file: f}
	if err := w.readDirectory(); err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	w.groups = Classify(w.dir, w.readEntry)
	slog.Debug("Opened wad",
		"path", path,
		"iwad", w.iwad,
		"entries", len(w.dir),
		"unrecognized", len(w.groups.Unrecognized))
	return w, nil
}

func (w *Wad) readDirectory() error {
	info, err := w.file.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	w.size = info.Size()

	header := make([]byte, wadHeaderSize)
	if n, _ := w.file.ReadAt(header, 0); n < wadHeaderSize {
		return fmt.Errorf("short header: %w", ErrFormat)
	}

	switch string(header[:4]) {
	case "IWAD":
		w.iwad = true
	case "PWAD":
	default:
		return fmt.Errorf("bad signature %q: %w", header[:4], ErrFormat)
	}

	count := int32(binary.LittleEndian.Uint32(header[4:]))
	offset := int32(binary.LittleEndian.Uint32(header[8:]))
	if count < 0 || offset < 0 {
		return fmt.Errorf("bad directory (count %d, offset %d): %w", count, offset, ErrFormat)
	}

	if int64(offset)+int64(count)*wadEntrySize > w.size {
		return fmt.Errorf("directory of %d entries at %d runs past end of file (%d bytes): %w",
			count, offset, w.size, ErrFormat)
	}

	raw := make([]byte, int(count)*wadEntrySize)
	if n, _ := w.file.ReadAt(raw, int64(offset)); n < len(raw) {
		return fmt.Errorf("directory runs past end of file: %w", ErrFormat)
	}

	w.dir = make([]DirEntry, count)
	for i := range w.dir {
		rec := raw[i*wadEntrySize:]
		w.dir[i] = DirEntry{
			Offset: int64(int32(binary.LittleEndian.Uint32(rec))),
			Size:   int64(int32(binary.LittleEndian.Uint32(rec[4:]))),
			Name:   lump.Name8(rec[8:16]),
		}
	}
	return nil
}

// readEntry checks the entry against the file length before allocating, so
// a forged size fails without reserving memory for it.
func (w *Wad) readEntry(e DirEntry) ([]byte, error) {
	if w.file == nil {
		return nil, ErrClosed
	}
	if e.Offset < 0 || e.Size < 0 {
		return nil, fmt.Errorf("lump %s has a negative offset or size: %w", e.Name, ErrFormat)
	}
	if e.Size == 0 {
		return []byte{}, nil
	}
	if e.Offset+e.Size > w.size {
		return nil, fmt.Errorf("lump %s (%d bytes at %d) runs past end of file: %w", e.Name, e.Size, e.Offset, ErrFormat)
	}
	data := make([]byte, e.Size)
	n, err := w.file.ReadAt(data, e.Offset)
	if n < len(data) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading lump %s: %w", e.Name, err)
	}
	return data, nil
}

func (w *Wad) Path() string { return w.path }

// IsIWAD reports whether the file carries the IWAD signature.
func (w *Wad) IsIWAD() bool { return w.iwad }

// Directory returns the raw directory in file order.
func (w *Wad) Directory() []DirEntry { return w.dir }

// Classification returns the namespace grouping of the directory.
func (w *Wad) Classification() *Classification { return w.groups }

func (w *Wad) Headers(nameGlob, namespaceGlob string) []LumpHeader {
	var headers []LumpHeader
	for _, internal := range wadNamespaces {
		ns, typ, _ := strings.Cut(internal, "_")
		if !match(namespaceGlob, ns) {
			continue
		}
		isMap := ns == "maps"
		ext := "lmp"
		if isMap {
			ext = "wad"
			if typ == "gwa" {
				ext = "gwa"
			}
		}

		for _, g := range w.groups.Groups(internal) {
			if !match(nameGlob, g.Name()) {
				continue
			}
			h := LumpHeader{
				Name:      g.Name(),
				Namespace: ns,
				Extension: ext,
				Type:      typ,
				Filter:    w.ctx.Game,
				Owner:     w,
			}
			if isMap {
				h.Handle = wadMap{entries: g}
				for _, e := range g {
					h.Size += e.Size
				}
				h.Size += wadHeaderSize + int64(len(g))*wadEntrySize
			} else {
				h.Handle = wadLump{entry: g[0]}
				h.Size = g[0].Size
			}
			headers = append(headers, h)
		}
	}
	return headers
}

func (w *Wad) Read(h Handle) ([]byte, error) {
	if w.file == nil {
		return nil, ErrClosed
	}
	switch h := h.(type) {
	case wadLump:
		return w.readEntry(h.entry)
	case wadMap:
		return w.buildWad(h.entries)
	default:
		return nil, ErrBadHandle
	}
}

// buildWad re-serializes a group of entries as a standalone PWAD: header,
// lump data in order, then the rebuilt directory.
func (w *Wad) buildWad(entries Group) ([]byte, error) {
	var dataSize int64
	for _, e := range entries {
		dataSize += e.Size
	}

	var buf bytes.Buffer
	buf.Grow(int(wadHeaderSize + dataSize + int64(len(entries))*wadEntrySize))

	header := make([]byte, wadHeaderSize)
	copy(header, "PWAD")
	binary.LittleEndian.PutUint32(header[4:], uint32(len(entries)))
	binary.LittleEndian.PutUint32(header[8:], uint32(wadHeaderSize+dataSize))
	buf.Write(header)

	offsets := make([]int64, len(entries))
	for i, e := range entries {
		data, err := w.readEntry(e)
		if err != nil {
			return nil, fmt.Errorf("rebuilding %s: %w", entries.Name(), err)
		}
		offsets[i] = int64(buf.Len())
		buf.Write(data)
	}

	rec := make([]byte, wadEntrySize)
	for i, e := range entries {
		clear(rec)
		binary.LittleEndian.PutUint32(rec, uint32(offsets[i]))
		binary.LittleEndian.PutUint32(rec[4:], uint32(e.Size))
		lump.PutName8(rec[8:], e.Name)
		buf.Write(rec)
	}
	return buf.Bytes(), nil
}

func (w *Wad) Lookup(name string) ([]byte, error) {
	return lookup(w, name)
}

func (w *Wad) HasLump(nameGlob, namespaceGlob string) bool {
	return len(w.Headers(nameGlob, namespaceGlob)) > 0
}

func (w *Wad) SetContext(ctx Context) { w.ctx = ctx }

func (w *Wad) Context() Context { return w.ctx }

func (w *Wad) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
