// Package parser decodes uploaded product files into rows keyed by column name.
//
// CSV and Excel inputs normalize to the same row shape so callers never need
// to know which format was uploaded. The first row of a file is its header.
// Rows are produced lazily through a RowReader, which can be consumed once.
package parser

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/medisupply/product-import/internal/models"
)

// FileType is the decoder used for an upload, picked from its extension.
type FileType string

const (
	FileTypeCSV         FileType = "csv"
	FileTypeSpreadsheet FileType = "spreadsheet"
	FileTypeLegacyExcel FileType = "xls"
)

// dateLayout is how spreadsheet date cells are rendered into rows.
const dateLayout = "2006-01-02"

// RowReader yields data rows in file order. Next returns io.EOF after the
// last row. A RowReader cannot be rewound.
type RowReader interface {
	// Header returns the normalized column names, or nil for an empty file.
	Header() []string

	// Next returns the next non-blank data row.
	Next() (models.NumberedRow, error)

	// Close releases the underlying decoder.
	Close() error
}

// headerAliases maps alternate spellings seen in customer files to the
// canonical column name.
var headerAliases = map[string]string{
	"price_per_unit": "price_per_unite",
	"unit_price":     "price_per_unite",
	"image":          "image_url",
	"provider":       "provider_id",
	"expiration":     "due_date",
}

// NormalizeHeader lower-cases a header cell, trims it and joins words with
// underscores, then resolves known aliases.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Join(strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	}), "_")
	if canonical, ok := headerAliases[h]; ok {
		return canonical
	}
	return h
}

// ReadAll drains r into a slice, stopping early if ctx is cancelled.
func ReadAll(ctx context.Context, r RowReader) ([]models.NumberedRow, error) {
	var rows []models.NumberedRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// buildRow zips a header with a record. Cells past the header are dropped and
// missing trailing cells become blank. The first occurrence of a duplicated
// column wins.
func buildRow(header []string, record []string) models.RawRow {
	row := make(models.RawRow, len(header))
	for i, col := range header {
		if col == "" {
			continue
		}
		if _, seen := row[col]; seen {
			continue
		}
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

// normalizeTimestamp reduces an ISO-8601 timestamp, as stored by typed
// spreadsheet date cells, to its calendar date.
func normalizeTimestamp(v string) string {
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
		return t.Format(dateLayout)
	}
	return v
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeHeaderRow(record []string) []string {
	header := make([]string, len(record))
	for i, h := range record {
		header[i] = NormalizeHeader(h)
	}
	return header
}
