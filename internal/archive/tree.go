package archive

import (
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"
)

var (
	wadExtensions      = []string{".wad", ".iwad"}
	zipExtensions      = []string{".zip", ".pk3", ".pkz", ".pke", ".ipk3"}
	sevenZipExtensions = []string{".pk7", ".ipk7"}
)

func isArchiveExt(ext string) bool {
	ext = strings.ToLower(ext)
	return slices.Contains(wadExtensions, ext) ||
		slices.Contains(zipExtensions, ext) ||
		slices.Contains(sevenZipExtensions, ext)
}

// treeLump is a file in a path based archive, placed by the convention
// [filter/<filter>/]<namespace>/.../<name>.<ext>. Files at the top level
// are global.
type treeLump struct {
	path      string
	name      string
	namespace string
	extension string
	filter    string
	size      int64
}

func parseTreePath(p string, size int64) treeLump {
	segs := strings.Split(p, "/")
	base := segs[len(segs)-1]
	ext := path.Ext(base)

	l := treeLump{
		path:      p,
		name:      strings.TrimSuffix(base, ext),
		namespace: "global",
		extension: strings.ToLower(strings.TrimPrefix(ext, ".")),
		size:      size,
	}

	if len(segs) > 2 && strings.EqualFold(segs[0], "filter") {
		l.filter = NormalizeFilter(segs[1])
		segs = segs[2:]
	}
	if len(segs) > 1 {
		l.namespace = strings.ToLower(segs[0])
	}
	return l
}

// isNested reports whether the file is an archive to be opened as its own
// reader. Archives under maps are per-map WADs and stay plain lumps.
func (l treeLump) isNested() bool {
	return l.namespace != "maps" && isArchiveExt(path.Ext(l.path))
}

// nestedArchive is an archive stored inside another. temp is the file it
// was materialized to, if any.
type nestedArchive struct {
	path   string
	reader Reader
	temp   string
}

type treeHandle string

type nestedHandle struct {
	path  string
	inner Handle
}

// tree holds the lumps and nested archives shared by Pk3 and Folder.
type tree struct {
	lumps  []treeLump
	nested []*nestedArchive
	ctx    Context
}

func (t *tree) add(l treeLump) {
	t.lumps = append(t.lumps, l)
}

func (t *tree) headers(owner Reader, nameGlob, namespaceGlob string) []LumpHeader {
	var headers []LumpHeader
	for _, l := range t.lumps {
		if !match(namespaceGlob, l.namespace) || !match(nameGlob, l.name) {
			continue
		}
		filter := l.filter
		if filter == "" {
			filter = t.ctx.Game
		} else if !Visible(filter, t.ctx) {
			continue
		}
		headers = append(headers, LumpHeader{
			Name:      l.name,
			Namespace: l.namespace,
			Extension: l.extension,
			Filter:    filter,
			Size:      l.size,
			Handle:    treeHandle(l.path),
			Owner:     owner,
		})
	}

	for _, n := range t.nested {
		n.reader.SetContext(t.ctx)
		for _, h := range n.reader.Headers(nameGlob, namespaceGlob) {
			h.Handle = nestedHandle{path: n.path, inner: h.Handle}
			h.Owner = owner
			headers = append(headers, h)
		}
	}
	return headers
}

func (t *tree) readNested(h nestedHandle) ([]byte, error) {
	for _, n := range t.nested {
		if n.path == h.path {
			return n.reader.Read(h.inner)
		}
	}
	return nil, fmt.Errorf("nested archive %s: %w", h.path, ErrBadHandle)
}

func (t *tree) SetContext(ctx Context) { t.ctx = ctx }

func (t *tree) Context() Context { return t.ctx }

func (t *tree) closeNested() error {
	var firstErr error
	for _, n := range t.nested {
		if err := n.reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.nested = nil
	return firstErr
}

func logNestedFailure(parent, name string, err error) {
	slog.Warn("Skipping nested archive", "archive", parent, "path", name, "error", err)
}
