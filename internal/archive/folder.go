package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Folder reads an extracted archive tree from a directory. Nested archives
// are opened in place.
type Folder struct {
	tree
	fsys afero.Fs
	root string
}

func OpenFolder(fsys afero.Fs, root string) (*Folder, error) {
	fo := &Folder{fsys: fsys, root: root}

	err := afero.Walk(fsys, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		l := parseTreePath(filepath.ToSlash(rel), info.Size())
		if !l.isNested() {
			fo.add(l)
			return nil
		}
		r, err := Open(fsys, p)
		if err != nil {
			logNestedFailure(root, l.path, err)
			return nil
		}
		fo.nested = append(fo.nested, &nestedArchive{path: l.path, reader: r})
		return nil
	})
	if err != nil {
		fo.closeNested()
		return nil, &OpenError{Path: root, Err: fmt.Errorf("walking directory: %w", err)}
	}

	slog.Debug("Opened folder", "path", root, "lumps", len(fo.lumps), "nested", len(fo.nested))
	return fo, nil
}

func (fo *Folder) Path() string { return fo.root }

func (fo *Folder) Headers(nameGlob, namespaceGlob string) []LumpHeader {
	return fo.headers(fo, nameGlob, namespaceGlob)
}

func (fo *Folder) Read(h Handle) ([]byte, error) {
	switch h := h.(type) {
	case treeHandle:
		return afero.ReadFile(fo.fsys, filepath.Join(fo.root, filepath.FromSlash(string(h))))
	case nestedHandle:
		return fo.readNested(h)
	default:
		return nil, ErrBadHandle
	}
}

func (fo *Folder) Lookup(name string) ([]byte, error) {
	return lookup(fo, name)
}

func (fo *Folder) HasLump(nameGlob, namespaceGlob string) bool {
	return len(fo.Headers(nameGlob, namespaceGlob)) > 0
}

func (fo *Folder) Close() error {
	return fo.closeNested()
}
