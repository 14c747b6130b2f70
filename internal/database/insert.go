package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"
)

const insertLumpSQL = `INSERT INTO "lumps" (archive, archive_index, namespace, name, extension, type, filter, size, md5)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// LumpRow is one catalog row
type LumpRow struct {
	Archive      string
	ArchiveIndex int
	Namespace    string
	Name         string
	Extension    string
	Type         string
	Filter       string
	Size         int64
	MD5          string
}

// BulkInserter writes catalog rows in batched transactions
type BulkInserter struct {
	db         *Database
	batchSize  int
	maxRetries int
	retryDelay time.Duration
}

// BulkInsertOptions configures bulk insertion behavior
type BulkInsertOptions struct {
	// BatchSize determines how many rows to insert per transaction
	BatchSize int

	// MaxRetries is how often a batch is retried when the database is busy
	MaxRetries int

	// RetryDelay is the pause before the first retry; it doubles each attempt
	RetryDelay time.Duration
}

func DefaultBulkInsertOptions() *BulkInsertOptions {
	return &BulkInsertOptions{
		BatchSize:  1000,
		MaxRetries: 3,
		RetryDelay: 50 * time.Millisecond,
	}
}

func NewBulkInserter(db *Database, options *BulkInsertOptions) *BulkInserter {
	if options == nil {
		options = DefaultBulkInsertOptions()
	}
	batchSize := options.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	return &BulkInserter{
		db:         db,
		batchSize:  batchSize,
		maxRetries: options.MaxRetries,
		retryDelay: options.RetryDelay,
	}
}

// InsertLumps writes rows batch by batch. A failing batch is rolled back and
// stops the insert; earlier batches stay committed.
func (bi *BulkInserter) InsertLumps(ctx context.Context, rows []LumpRow) error {
	if len(rows) == 0 {
		slog.Debug("No rows to insert", "table", LumpsTable)
		return nil
	}

	for i := 0; i < len(rows); i += bi.batchSize {
		end := min(i+bi.batchSize, len(rows))

		if err := bi.insertWithRetry(ctx, rows[i:end]); err != nil {
			return fmt.Errorf("inserting batch %d-%d for table %s: %w", i, end-1, LumpsTable, err)
		}
	}

	return nil
}

func (bi *BulkInserter) insertWithRetry(ctx context.Context, batch []LumpRow) error {
	delay := bi.retryDelay
	for attempt := 0; ; attempt++ {
		err := bi.insertBatch(ctx, batch)
		if err == nil || attempt >= bi.maxRetries || !isBusy(err) {
			return err
		}

		slog.Debug("Database busy, retrying batch", "attempt", attempt+1, "delay", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (bi *BulkInserter) insertBatch(ctx context.Context, batch []LumpRow) error {
	tx, err := bi.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertLumpSQL)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range batch {
		var md5 any
		if row.MD5 != "" {
			md5 = row.MD5
		}
		if _, err := stmt.ExecContext(ctx,
			row.Archive, row.ArchiveIndex, row.Namespace, row.Name,
			row.Extension, row.Type, row.Filter, row.Size, md5); err != nil {
			return fmt.Errorf("inserting %s/%s: %w", row.Namespace, row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func isBusy(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}
	return false
}
