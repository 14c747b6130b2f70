package archive

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// containerFile is one regular file inside a zip or 7z container.
type containerFile struct {
	Name string
	Size int64
	open func() (io.ReadCloser, error)
}

// container lists and opens the files of a packed archive. Directory
// entries are never listed.
type container interface {
	Files() []containerFile
}

type zipContainer struct {
	files []containerFile
}

func newZipContainer(r io.ReaderAt, size int64) (*zipContainer, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading zip directory: %w", ErrFormat)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	c := &zipContainer{files: make([]containerFile, 0, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		c.files = append(c.files, containerFile{
			Name: f.Name,
			Size: int64(f.UncompressedSize64),
			open: f.Open,
		})
	}
	return c, nil
}

func (c *zipContainer) Files() []containerFile { return c.files }

type sevenZipContainer struct {
	files []containerFile
}

func newSevenZipContainer(r io.ReaderAt, size int64) (*sevenZipContainer, error) {
	sr, err := sevenzip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading 7z directory: %w", ErrFormat)
	}

	c := &sevenZipContainer{files: make([]containerFile, 0, len(sr.File))}
	for _, f := range sr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		c.files = append(c.files, containerFile{
			Name: f.Name,
			Size: int64(f.UncompressedSize),
			open: f.Open,
		})
	}
	return c, nil
}

func (c *sevenZipContainer) Files() []containerFile { return c.files }

func readContainerFile(f containerFile) ([]byte, error) {
	rc, err := f.open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}
