package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
)

// maxXLSColumns is the BIFF8 column limit.
const maxXLSColumns = 256

// xlsReader reads the first sheet of a legacy binary (.xls) workbook. The
// decoder needs random access, so the upload is held in memory; its size is
// bounded by the upload limit.
type xlsReader struct {
	ctx    context.Context
	sheet  *xls.WorkSheet
	header []string
	next   int
	last   int
}

func newXLSReader(ctx context.Context, r io.Reader) (*xlsReader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.ParseError(fmt.Errorf("read upload: %w", err))
	}

	sheet, err := openFirstSheet(data)
	if err != nil {
		return nil, apperrors.ParseError(err)
	}

	p := &xlsReader{ctx: ctx, sheet: sheet, last: int(sheet.MaxRow)}

	// The first row with any content is the header
	for ; p.next <= p.last; p.next++ {
		row, ok := p.row(p.next)
		if !ok {
			continue
		}
		record, err := cells(row, maxXLSColumns)
		if err != nil {
			return nil, apperrors.ParseError(fmt.Errorf("read header row: %w", err))
		}
		if isEmptyRow(record) {
			continue
		}
		p.header = normalizeHeaderRow(trimTrailingBlanks(record))
		p.next++
		break
	}

	return p, nil
}

// openFirstSheet decodes the workbook and its first sheet. The decoder panics
// on some malformed files; those become errors.
func openFirstSheet(data []byte) (sheet *xls.WorkSheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheet, err = nil, fmt.Errorf("decode xls workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no sheets found in xls file")
	}
	sheet = wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no sheets found in xls file")
	}
	return sheet, nil
}

func (p *xlsReader) Header() []string {
	return p.header
}

func (p *xlsReader) Next() (models.NumberedRow, error) {
	if p.header == nil {
		return models.NumberedRow{}, io.EOF
	}

	for ; p.next <= p.last; p.next++ {
		if err := p.ctx.Err(); err != nil {
			return models.NumberedRow{}, err
		}

		row, ok := p.row(p.next)
		if !ok {
			continue
		}
		line := p.next + 1
		record, err := cells(row, len(p.header))
		if err != nil {
			return models.NumberedRow{}, apperrors.ParseError(fmt.Errorf("read row %d: %w", line, err))
		}
		if isEmptyRow(record) {
			continue
		}
		p.next++
		return models.NumberedRow{Line: line, Values: buildRow(p.header, record)}, nil
	}

	return models.NumberedRow{}, io.EOF
}

func (p *xlsReader) Close() error {
	return nil
}

// row returns the row at a zero-based index. Rows without any record are
// absent from the sheet and the decoder panics on them.
func (p *xlsReader) row(i int) (row *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			row, ok = nil, false
		}
	}()
	return p.sheet.Row(i), true
}

// cells reads the first n cells of a row.
func cells(row *xls.Row, n int) (record []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, err = nil, fmt.Errorf("decode cell: %v", r)
		}
	}()

	record = make([]string, n)
	for i := range record {
		record[i] = normalizeTimestamp(row.Col(i))
	}
	return record, nil
}

func trimTrailingBlanks(record []string) []string {
	end := len(record)
	for end > 0 && strings.TrimSpace(record[end-1]) == "" {
		end--
	}
	return record[:end]
}
