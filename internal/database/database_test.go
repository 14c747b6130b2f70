package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaIntrospection(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)

	ok, err := db.HasTable(ctx, LumpsTable)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, CreateSchema(ctx, db))
	require.NoError(t, CreateSchema(ctx, db))

	ok, err = db.HasTable(ctx, LumpsTable)
	require.NoError(t, err)
	assert.True(t, ok)

	tables, err := db.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lumps"}, tables)

	columns, err := db.Columns(ctx, LumpsTable)
	require.NoError(t, err)

	var names []string
	for _, c := range columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "archive", "archive_index", "namespace", "name", "extension", "type", "filter", "size", "md5"}, names)
	assert.True(t, columns[0].PrimaryKey)
	assert.True(t, columns[1].NotNull)
	require.NotNil(t, columns[6].Default)
	assert.Equal(t, "''", *columns[6].Default)
	assert.Nil(t, columns[9].Default)

	columns, err = db.Columns(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestInsertLumpsBatches(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)
	require.NoError(t, CreateSchema(ctx, db))

	rows := make([]LumpRow, 5)
	for i := range rows {
		rows[i] = LumpRow{Archive: "doom2.wad", ArchiveIndex: 1, Namespace: "global", Name: "LUMP", Extension: "lmp", Size: int64(i)}
	}
	rows[4].MD5 = "abc"

	inserter := NewBulkInserter(db, &BulkInsertOptions{BatchSize: 2})
	require.NoError(t, inserter.InsertLumps(ctx, rows))
	require.NoError(t, inserter.InsertLumps(ctx, nil))

	var count, withHash int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*), COUNT(md5) FROM lumps`).Scan(&count, &withHash))
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, withHash)
}

func TestClosedDatabase(t *testing.T) {
	db := openTestDatabase(t)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	_, err := db.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, errClosed)
	_, err = db.Tables(context.Background())
	assert.ErrorIs(t, err, errClosed)
}

func TestConnectionString(t *testing.T) {
	assert.Equal(t, "file:/tmp/a.db?_journal_mode=WAL&_busy_timeout=30000&_cache_size=10000&_synchronous=NORMAL",
		connectionString(DefaultDatabaseOptions("/tmp/a.db")))
	assert.Equal(t, "file:b.db?_synchronous=NORMAL",
		connectionString(&DatabaseOptions{Path: "b.db", BusyTimeout: time.Duration(0)}))
	assert.Equal(t, `"we""ird"`, quoteSQLIdentifier(`we"ird`))
}
