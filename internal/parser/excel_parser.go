package parser

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/models"
	"github.com/xuri/excelize/v2"
)

// rawValues reads stored cell values instead of their display text, so a
// stock of 1500 formatted as "#,##0" reads 1500 and not "1,500".
var rawValues = excelize.Options{RawCellValue: true}

// excelReader streams rows from the first sheet of a workbook.
type excelReader struct {
	ctx        context.Context
	file       *excelize.File
	sheet      string
	rows       *excelize.Rows
	header     []string
	line       int
	date1904   bool
	dateStyles map[int]bool
}

func newExcelReader(ctx context.Context, r io.Reader) (*excelReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.ParseError(fmt.Errorf("open Excel workbook: %w", err))
	}

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		f.Close()
		return nil, apperrors.ParseError(fmt.Errorf("no sheets found in Excel file"))
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		f.Close()
		return nil, apperrors.ParseError(fmt.Errorf("read rows from sheet %s: %w", sheetName, err))
	}

	p := &excelReader{
		ctx:        ctx,
		file:       f,
		sheet:      sheetName,
		rows:       rows,
		dateStyles: make(map[int]bool),
	}

	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		p.date1904 = *props.Date1904
	}

	// The first row with any content is the header
	for rows.Next() {
		p.line++
		record, err := rows.Columns(rawValues)
		if err != nil {
			p.Close()
			return nil, apperrors.ParseError(fmt.Errorf("read header row: %w", err))
		}
		if isEmptyRow(record) {
			continue
		}
		p.header = normalizeHeaderRow(record)
		break
	}
	if err := rows.Error(); err != nil {
		p.Close()
		return nil, apperrors.ParseError(fmt.Errorf("read sheet %s: %w", sheetName, err))
	}

	return p, nil
}

func (p *excelReader) Header() []string {
	return p.header
}

func (p *excelReader) Next() (models.NumberedRow, error) {
	if p.header == nil {
		return models.NumberedRow{}, io.EOF
	}

	for p.rows.Next() {
		if err := p.ctx.Err(); err != nil {
			return models.NumberedRow{}, err
		}

		p.line++
		record, err := p.readRecord()
		if err != nil {
			return models.NumberedRow{}, apperrors.ParseError(fmt.Errorf("read row %d: %w", p.line, err))
		}
		if isEmptyRow(record) {
			continue
		}
		return models.NumberedRow{Line: p.line, Values: buildRow(p.header, record)}, nil
	}

	if err := p.rows.Error(); err != nil {
		return models.NumberedRow{}, apperrors.ParseError(fmt.Errorf("read sheet: %w", err))
	}
	return models.NumberedRow{}, io.EOF
}

func (p *excelReader) Close() error {
	if p.rows != nil {
		p.rows.Close()
	}
	return p.file.Close()
}

// readRecord returns the current row with every cell as the text a CSV export
// of the same sheet would carry.
func (p *excelReader) readRecord() ([]string, error) {
	record, err := p.rows.Columns(rawValues)
	if err != nil {
		return nil, err
	}
	for i, raw := range record {
		if record[i], err = p.cellText(i+1, raw); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// cellText converts serial numbers in date-formatted cells to YYYY-MM-DD.
// Other values pass through unchanged.
func (p *excelReader) cellText(col int, raw string) (string, error) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return normalizeTimestamp(raw), nil
	}
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return raw, nil
	}

	cell, err := excelize.CoordinatesToCellName(col, p.line)
	if err != nil {
		return "", err
	}
	styleID, err := p.file.GetCellStyle(p.sheet, cell)
	if err != nil {
		return "", err
	}

	isDate, ok := p.dateStyles[styleID]
	if !ok {
		isDate = p.isDateStyle(styleID)
		p.dateStyles[styleID] = isDate
	}
	if !isDate {
		return raw, nil
	}

	t, err := excelize.ExcelDateToTime(serial, p.date1904)
	if err != nil {
		return raw, nil
	}
	return t.Format(dateLayout), nil
}

func (p *excelReader) isDateStyle(styleID int) bool {
	style, err := p.file.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return isBuiltInDateFormat(style.NumFmt)
}

// isBuiltInDateFormat reports whether a built-in number format id renders a
// calendar date. Time-only formats are excluded.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		// East Asian locale dates
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code has day or year
// tokens once literals, escapes and bracketed sections are removed.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inQuote:
			inQuote = r != '"'
		case r == '"':
			inQuote = true
		case inBracket:
			inBracket = r != ']'
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	tokens := strings.ToLower(b.String())
	return strings.ContainsAny(tokens, "dy")
}
