package database

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/doomarc/internal/archive"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(DefaultDatabaseOptions(filepath.Join(t.TempDir(), "catalog", "doomarc.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testChain(t *testing.T) *archive.Archives {
	t.Helper()

	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/base/playpal.lmp":         "palette",
		"/base/sounds/dspistol.lmp": "bang",
		"/mod/sounds/dspistol.lmp":  "pew",
	}
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(data), 0o644))
	}

	base, err := archive.Open(fsys, "/base")
	require.NoError(t, err)
	mod, err := archive.Open(fsys, "/mod")
	require.NoError(t, err)

	chain := archive.NewArchives(base, mod)
	t.Cleanup(func() { chain.CloseAll() })
	return chain
}

func hexMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)

	summary, err := Catalog(ctx, db, testChain(t), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, int64(len("palette")+len("bang")+len("pew")), summary.Bytes)

	rows, err := db.Query(ctx, `SELECT archive, archive_index, md5, size FROM lumps WHERE namespace = 'sounds' AND name = 'dspistol' ORDER BY archive_index`)
	require.NoError(t, err)
	defer rows.Close()

	type found struct {
		archive string
		index   int
		md5     string
		size    int64
	}
	var got []found
	for rows.Next() {
		var f found
		require.NoError(t, rows.Scan(&f.archive, &f.index, &f.md5, &f.size))
		got = append(got, f)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []found{
		{archive: "/base", index: 0, md5: hexMD5("bang"), size: 4},
		{archive: "/mod", index: 1, md5: hexMD5("pew"), size: 3},
	}, got)
}

func TestCatalogRebuildsInPlace(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)
	chain := testChain(t)

	_, err := Catalog(ctx, db, chain, nil, nil)
	require.NoError(t, err)

	var calls int
	_, err = Catalog(ctx, db, chain, &BulkInsertOptions{BatchSize: 1}, func(current, total int, _ string) {
		calls++
		assert.Equal(t, 3, total)
		assert.Equal(t, calls, current)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	var count int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM lumps`).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestCatalogCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Catalog(ctx, openTestDatabase(t), testChain(t), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
