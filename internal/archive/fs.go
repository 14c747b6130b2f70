package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// chainFS is a read-only fs.FS over the merged namespaces of a chain. Each
// lump is a file at <namespace>/<name>.<ext>; global lumps sit at the root.
type chainFS struct {
	files []fsEntry
}

type fsEntry struct {
	path   string
	header LumpHeader
}

// NewFS snapshots the visible lumps of a chain as an fs.FS.
func NewFS(a *Archives) fs.FS {
	var files []fsEntry
	for _, lumps := range a.Namespaces() {
		for _, h := range lumps {
			files = append(files, fsEntry{path: h.Path(), header: h})
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].path < files[j].path
	})
	return &chainFS{files: files}
}

func (c *chainFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return &chainDir{fs: c, name: ".", prefix: ""}, nil
	}

	idx := sort.Search(len(c.files), func(i int) bool {
		return c.files[i].path >= name
	})
	if idx < len(c.files) && c.files[idx].path == name {
		return &chainFile{entry: &c.files[idx]}, nil
	}

	dirName := name + "/"
	idx += sort.Search(len(c.files)-idx, func(i int) bool {
		return c.files[idx+i].path >= dirName
	})
	if idx < len(c.files) && strings.HasPrefix(c.files[idx].path, dirName) {
		return &chainDir{fs: c, name: name, prefix: dirName, offset: idx}, nil
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

type chainFile struct {
	entry  *fsEntry
	reader *bytes.Reader
}

func (f *chainFile) Read(p []byte) (int, error) {
	if f.reader == nil {
		data, err := ReadLump(f.entry.header)
		if err != nil {
			return 0, &fs.PathError{Op: "read", Path: f.entry.path, Err: err}
		}
		f.reader = bytes.NewReader(data)
	}
	return f.reader.Read(p)
}

func (f *chainFile) Close() error { return nil }

func (f *chainFile) Stat() (fs.FileInfo, error) {
	return fileInfo{name: path.Base(f.entry.path), size: f.entry.header.Size}, nil
}

type chainDir struct {
	fs     *chainFS
	name   string
	prefix string
	offset int
}

func (d *chainDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: fmt.Errorf("is a directory")}
}

func (d *chainDir) Close() error { return nil }

func (d *chainDir) Stat() (fs.FileInfo, error) {
	return fileInfo{name: path.Base(d.name), dir: true}, nil
}

func (d *chainDir) ReadDir(n int) ([]fs.DirEntry, error) {
	files := d.fs.files
	var entries []fs.DirEntry
	for d.offset < len(files) && (n <= 0 || len(entries) < n) {
		p := files[d.offset].path
		if !strings.HasPrefix(p, d.prefix) {
			d.offset = len(files)
			break
		}
		rest := strings.TrimPrefix(p, d.prefix)
		if sub, _, isDir := strings.Cut(rest, "/"); isDir {
			entries = append(entries, fs.FileInfoToDirEntry(fileInfo{name: sub, dir: true}))
			// skip the rest of the subdirectory
			subPrefix := d.prefix + sub + "/"
			for d.offset < len(files) && strings.HasPrefix(files[d.offset].path, subPrefix) {
				d.offset++
			}
			continue
		}
		entries = append(entries, fs.FileInfoToDirEntry(fileInfo{name: rest, size: files[d.offset].header.Size}))
		d.offset++
	}
	if n > 0 && len(entries) == 0 {
		return nil, io.EOF
	}
	return entries, nil
}

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi fileInfo) Name() string { return fi.name }
func (fi fileInfo) Size() int64  { return fi.size }
func (fi fileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
func (fi fileInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (fi fileInfo) IsDir() bool        { return fi.dir }
func (fi fileInfo) Sys() any           { return nil }
