package archive

import (
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Pk3 reads a zip (or 7z) resource archive. Archives stored inside it are
// copied to temporary files on open and read as nested readers; the
// temporary files are removed by Close.
type Pk3 struct {
	tree
	fsys  afero.Fs
	path  string
	file  afero.File
	files map[string]containerFile
}

// OpenPk3 opens a zip based archive, or a 7z one for .pk7 and .ipk7.
func OpenPk3(fsys afero.Fs, p string) (*Pk3, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, &OpenError{Path: p, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: p, Err: err}
	}

	var c container
	if slices.Contains(sevenZipExtensions, strings.ToLower(path.Ext(p))) {
		c, err = newSevenZipContainer(f, info.Size())
	} else {
		c, err = newZipContainer(f, info.Size())
	}
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: p, Err: err}
	}

	pk := &Pk3{
		fsys:  fsys,
		path:  p,
		file:  f,
		files: make(map[string]containerFile),
	}
	for _, cf := range c.Files() {
		pk.files[cf.Name] = cf
		l := parseTreePath(cf.Name, cf.Size)
		if !l.isNested() {
			pk.add(l)
			continue
		}
		n, err := pk.extractNested(cf)
		if err != nil {
			logNestedFailure(p, cf.Name, err)
			continue
		}
		pk.nested = append(pk.nested, n)
	}

	slog.Debug("Opened pk3", "path", p, "lumps", len(pk.lumps), "nested", len(pk.nested))
	return pk, nil
}

func (pk *Pk3) extractNested(cf containerFile) (*nestedArchive, error) {
	data, err := readContainerFile(cf)
	if err != nil {
		return nil, err
	}

	tmp, err := afero.TempFile(pk.fsys, "", "doomarc-*"+strings.ToLower(path.Ext(cf.Name)))
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	name := tmp.Name()
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		pk.fsys.Remove(name)
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	r, err := Open(pk.fsys, name)
	if err != nil {
		pk.fsys.Remove(name)
		return nil, err
	}
	return &nestedArchive{path: cf.Name, reader: r, temp: name}, nil
}

func (pk *Pk3) Path() string { return pk.path }

func (pk *Pk3) Headers(nameGlob, namespaceGlob string) []LumpHeader {
	return pk.headers(pk, nameGlob, namespaceGlob)
}

func (pk *Pk3) Read(h Handle) ([]byte, error) {
	if pk.file == nil {
		return nil, ErrClosed
	}
	switch h := h.(type) {
	case treeHandle:
		cf, ok := pk.files[string(h)]
		if !ok {
			return nil, fmt.Errorf("%s: %w", h, ErrBadHandle)
		}
		return readContainerFile(cf)
	case nestedHandle:
		return pk.readNested(h)
	default:
		return nil, ErrBadHandle
	}
}

func (pk *Pk3) Lookup(name string) ([]byte, error) {
	return lookup(pk, name)
}

func (pk *Pk3) HasLump(nameGlob, namespaceGlob string) bool {
	return len(pk.Headers(nameGlob, namespaceGlob)) > 0
}

// Close closes nested readers, removes their temporary files and closes
// the archive. Calling it again does nothing.
func (pk *Pk3) Close() error {
	if pk.file == nil {
		return nil
	}

	temps := make([]string, 0, len(pk.nested))
	for _, n := range pk.nested {
		if n.temp != "" {
			temps = append(temps, n.temp)
		}
	}
	err := pk.closeNested()
	for _, t := range temps {
		if rerr := pk.fsys.Remove(t); rerr != nil && err == nil {
			err = fmt.Errorf("removing %s: %w", t, rerr)
		}
	}

	if cerr := pk.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	pk.file = nil
	return err
}
