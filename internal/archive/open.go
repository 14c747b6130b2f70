package archive

import (
	"path"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Open opens path with the reader matching its type: Wad for .wad and
// .iwad, Pk3 for zip and 7z archives, Folder for a directory.
func Open(fsys afero.Fs, p string) (Reader, error) {
	info, err := fsys.Stat(p)
	if err != nil {
		return nil, &OpenError{Path: p, Err: ErrInvalidPath}
	}

	var r Reader
	ext := strings.ToLower(path.Ext(p))
	switch {
	case info.IsDir():
		r, err = OpenFolder(fsys, p)
	case slices.Contains(wadExtensions, ext):
		r, err = OpenWad(fsys, p)
	case slices.Contains(zipExtensions, ext), slices.Contains(sevenZipExtensions, ext):
		r, err = OpenPk3(fsys, p)
	default:
		return nil, &OpenError{Path: p, Err: ErrUnsupportedType}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
