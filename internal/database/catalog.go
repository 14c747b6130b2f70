package database

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/jchantrell/doomarc/internal/archive"
)

// ProgressCallback is called after each lump is hashed
type ProgressCallback func(current int, total int, description string)

// CatalogSummary reports what a catalog run stored
type CatalogSummary struct {
	Rows   int
	Failed int
	Bytes  int64
}

// Catalog rebuilds the lumps table from the visible headers of chain. Lumps
// that cannot be read are still recorded, with a NULL md5.
func Catalog(ctx context.Context, db *Database, chain *archive.Archives, options *BulkInsertOptions, progress ProgressCallback) (*CatalogSummary, error) {
	if err := CreateSchema(ctx, db); err != nil {
		return nil, err
	}
	if err := ClearLumps(ctx, db); err != nil {
		return nil, err
	}

	rows, summary, err := collectRows(ctx, chain, progress)
	if err != nil {
		return nil, err
	}

	if err := NewBulkInserter(db, options).InsertLumps(ctx, rows); err != nil {
		return nil, fmt.Errorf("writing catalog: %w", err)
	}

	slog.Info("Catalog written",
		"database", db.Path(),
		"lumps", humanize.Comma(int64(summary.Rows)),
		"unreadable", summary.Failed,
		"size", humanize.Bytes(uint64(summary.Bytes)))
	return summary, nil
}

func collectRows(ctx context.Context, chain *archive.Archives, progress ProgressCallback) ([]LumpRow, *CatalogSummary, error) {
	type indexed struct {
		index  int
		header archive.LumpHeader
	}

	var headers []indexed
	for i, r := range chain.Readers() {
		for _, h := range r.Headers("*", "*") {
			headers = append(headers, indexed{index: i, header: h})
		}
	}

	summary := &CatalogSummary{}
	rows := make([]LumpRow, 0, len(headers))
	for n, item := range headers {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		h := item.header
		row := LumpRow{
			Archive:      h.Owner.Path(),
			ArchiveIndex: item.index,
			Namespace:    h.Namespace,
			Name:         h.Name,
			Extension:    h.Extension,
			Type:         h.Type,
			Filter:       h.Filter,
			Size:         h.Size,
		}

		data, err := archive.ReadLump(h)
		if err != nil {
			slog.Warn("Failed to read lump", "lump", h.Path(), "archive", row.Archive, "error", err)
			summary.Failed++
		} else {
			sum := md5.Sum(data)
			row.MD5 = hex.EncodeToString(sum[:])
			summary.Bytes += int64(len(data))
		}

		rows = append(rows, row)
		if progress != nil {
			progress(n+1, len(headers), h.Name)
		}
	}

	summary.Rows = len(rows)
	return rows, summary, nil
}
