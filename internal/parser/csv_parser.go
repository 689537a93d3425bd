package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
)

// csvReader streams rows from delimited text.
type csvReader struct {
	ctx    context.Context
	reader *csv.Reader
	header []string
}

func newCSVReader(ctx context.Context, r io.Reader) (*csvReader, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record
	reader.TrimLeadingSpace = true

	// Read header row
	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &csvReader{ctx: ctx, reader: reader}, nil
	}
	if err != nil {
		return nil, apperrors.ParseError(fmt.Errorf("read CSV header: %w", err))
	}

	return &csvReader{
		ctx:    ctx,
		reader: reader,
		header: normalizeHeaderRow(record),
	}, nil
}

func (p *csvReader) Header() []string {
	return p.header
}

func (p *csvReader) Next() (models.NumberedRow, error) {
	if p.header == nil {
		return models.NumberedRow{}, io.EOF
	}

	for {
		if err := p.ctx.Err(); err != nil {
			return models.NumberedRow{}, err
		}

		record, err := p.reader.Read()
		if errors.Is(err, io.EOF) {
			return models.NumberedRow{}, io.EOF
		}
		if err != nil {
			return models.NumberedRow{}, apperrors.ParseError(fmt.Errorf("read CSV row: %w", err))
		}

		// encoding/csv already skips empty lines; this drops rows of empty cells
		if isEmptyRow(record) {
			continue
		}

		line, _ := p.reader.FieldPos(0)
		return models.NumberedRow{Line: line, Values: buildRow(p.header, record)}, nil
	}
}

func (p *csvReader) Close() error {
	return nil
}
