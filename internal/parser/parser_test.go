package parser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     FileType
		wantErr  bool
	}{
		{"products.csv", FileTypeCSV, false},
		{"PRODUCTS.CSV", FileTypeCSV, false},
		{"products.xlsx", FileTypeSpreadsheet, false},
		{"legacy.xls", FileTypeLegacyExcel, false},
		{"LEGACY.XLS", FileTypeLegacyExcel, false},
		{"products.json", "", true},
		{"products", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := Detect(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "name", NormalizeHeader("  Name "))
	assert.Equal(t, "due_date", NormalizeHeader("Due Date"))
	assert.Equal(t, "provider_id", NormalizeHeader("provider-id"))
	assert.Equal(t, "price_per_unite", NormalizeHeader("Price Per Unit"))
	assert.Equal(t, "name", NormalizeHeader("\ufeffname"))
}

func TestCSVReader(t *testing.T) {
	content := "name,details,Stock\n" +
		"Gauze,Sterile gauze pads,10\n" +
		"\n" +
		",,\n" +
		"\"Syringe, 5ml\",Single use syringe,20,extra\n" +
		"Mask,Surgical mask\n"

	r, err := Open(context.Background(), FileTypeCSV, strings.NewReader(content))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"name", "details", "stock"}, r.Header())

	rows, err := ReadAll(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Gauze", rows[0].Values["name"])
	assert.Equal(t, "10", rows[0].Values["stock"])

	// Blank lines still count toward the file position
	assert.Equal(t, 5, rows[1].Line)
	assert.Equal(t, "Syringe, 5ml", rows[1].Values["name"])

	// Missing trailing cells are blank
	assert.Equal(t, 6, rows[2].Line)
	assert.Equal(t, "", rows[2].Values["stock"])
}

func TestCSVReader_Empty(t *testing.T) {
	for name, content := range map[string]string{
		"zero bytes":  "",
		"header only": "name,details,store\n",
	} {
		t.Run(name, func(t *testing.T) {
			r, err := Open(context.Background(), FileTypeCSV, strings.NewReader(content))
			require.NoError(t, err)

			rows, err := ReadAll(context.Background(), r)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestCSVReader_Malformed(t *testing.T) {
	content := "name,details\n\"unterminated,quote\n"

	r, err := Open(context.Background(), FileTypeCSV, strings.NewReader(content))
	require.NoError(t, err)

	_, err = ReadAll(context.Background(), r)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeFileParseError))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestCSVReader_IOFailure(t *testing.T) {
	_, err := Open(context.Background(), FileTypeCSV, failingReader{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeFileParseError))
}

func TestCSVReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r, err := Open(ctx, FileTypeCSV, strings.NewReader("name\nGauze\n"))
	require.NoError(t, err)

	cancel()
	_, err = r.Next()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcelReader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Name", "Details", "Stock", "Price Per Unit"},
		{"Gauze", "Sterile gauze pads", 10, 2.5},
		{"", "", "", ""},
		{"Mask", "Surgical mask", 200, 0.75},
	})

	r, err := Open(context.Background(), FileTypeSpreadsheet, bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"name", "details", "stock", "price_per_unite"}, r.Header())

	rows, err := ReadAll(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Gauze", rows[0].Values["name"])
	assert.Equal(t, "10", rows[0].Values["stock"])
	assert.Equal(t, "2.5", rows[0].Values["price_per_unite"])

	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "Mask", rows[1].Values["name"])
}

func TestExcelReader_SameShapeAsCSV(t *testing.T) {
	csvRows := func() []map[string]string {
		r, err := Open(context.Background(), FileTypeCSV, strings.NewReader("name,stock\nGauze,10\n"))
		require.NoError(t, err)
		rows, err := ReadAll(context.Background(), r)
		require.NoError(t, err)
		out := make([]map[string]string, len(rows))
		for i, row := range rows {
			out[i] = row.Values
		}
		return out
	}()

	data := buildWorkbook(t, [][]interface{}{{"name", "stock"}, {"Gauze", "10"}})
	r, err := Open(context.Background(), FileTypeSpreadsheet, bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()
	rows, err := ReadAll(context.Background(), r)
	require.NoError(t, err)

	require.Len(t, rows, len(csvRows))
	assert.Equal(t, csvRows[0], map[string]string(rows[0].Values))
}

// readValues drains r and returns each row's values in order.
func readValues(t *testing.T, r RowReader) []map[string]string {
	t.Helper()
	rows, err := ReadAll(context.Background(), r)
	require.NoError(t, err)
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		out[i] = row.Values
	}
	return out
}

func TestExcelReader_FormattedCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "due_date", "stock", "price_per_unite", "batch"}))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Sterile Gauze"))
	require.NoError(t, f.SetCellValue(sheet, "B2", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "C2", 1500))
	require.NoError(t, f.SetCellValue(sheet, "D2", 1234.5))
	require.NoError(t, f.SetCellValue(sheet, "E2", "LOT-2025-01"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Surgical Mask"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 46387))
	require.NoError(t, f.SetCellValue(sheet, "C3", 25))
	require.NoError(t, f.SetCellValue(sheet, "D3", 0.75))
	require.NoError(t, f.SetCellValue(sheet, "E3", "LOT-2025-02"))

	shortDate, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	isoDate := "yyyy/mm/dd"
	customDate, err := f.NewStyle(&excelize.Style{CustomNumFmt: &isoDate})
	require.NoError(t, err)
	money := `"$"#,##0.00`
	customMoney, err := f.NewStyle(&excelize.Style{CustomNumFmt: &money})
	require.NoError(t, err)

	require.NoError(t, f.SetCellStyle(sheet, "B2", "B2", shortDate))
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", thousands))
	require.NoError(t, f.SetCellStyle(sheet, "D2", "D3", customMoney))
	require.NoError(t, f.SetCellStyle(sheet, "B3", "B3", customDate))
	require.NoError(t, f.SetCellStyle(sheet, "C3", "C3", thousands))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	csvContent := "name,due_date,stock,price_per_unite,batch\n" +
		"Sterile Gauze,2026-06-30,1500,1234.5,LOT-2025-01\n" +
		"Surgical Mask,2026-12-31,25,0.75,LOT-2025-02\n"
	csvReader, err := Open(context.Background(), FileTypeCSV, strings.NewReader(csvContent))
	require.NoError(t, err)
	want := readValues(t, csvReader)

	r, err := Open(context.Background(), FileTypeSpreadsheet, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, want, readValues(t, r))
}

func TestDateFormatDetection(t *testing.T) {
	assert.True(t, isBuiltInDateFormat(14))
	assert.True(t, isBuiltInDateFormat(22))
	assert.False(t, isBuiltInDateFormat(0))
	assert.False(t, isBuiltInDateFormat(3))
	assert.False(t, isBuiltInDateFormat(20)) // h:mm

	assert.True(t, isDateFormatCode("yyyy-mm-dd"))
	assert.True(t, isDateFormatCode("[$-409]d-mmm-yy;@"))
	assert.False(t, isDateFormatCode(`"$"#,##0.00`))
	assert.False(t, isDateFormatCode(`0 "days"`))
	assert.False(t, isDateFormatCode(`[Red]#,##0`))
	assert.False(t, isDateFormatCode("h:mm:ss"))
}

func TestXLSReader(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "products_sample.xls"))
	if os.IsNotExist(err) {
		t.Skip("testdata file not found: products_sample.xls")
	}
	require.NoError(t, err)

	r, err := OpenFile(context.Background(), "products_sample.xls", bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{
		"name", "details", "store", "batch", "image_url",
		"due_date", "stock", "price_per_unite", "provider_id",
	}, r.Header())

	rows, err := ReadAll(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The sheet has no records at all for its third row
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)

	csvContent := "name,details,store,batch,image_url,due_date,stock,price_per_unite,provider_id\n" +
		"Sterile Gauze,\"Sterile gauze pads, 10x10 cm\",Bogota Central,LOT-2025-01,https://cdn.example.com/gauze.png,2026-06-30,100,2.5,550e8400-e29b-41d4-a716-446655440000\n" +
		"Surgical Mask,Three layer disposable surgical mask,Bogota Central,LOT-2025-02,,2026-12-31,500,0.75,550e8400-e29b-41d4-a716-446655440000\n"
	csvReader, err := Open(context.Background(), FileTypeCSV, strings.NewReader(csvContent))
	require.NoError(t, err)
	want := readValues(t, csvReader)

	for i, row := range rows {
		assert.Equal(t, want[i], map[string]string(row.Values), "row %d", row.Line)
	}
}

func TestXLSReader_Corrupt(t *testing.T) {
	for name, content := range map[string]string{
		"empty":    "",
		"not ole2": "this is not a legacy workbook",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Open(context.Background(), FileTypeLegacyExcel, strings.NewReader(content))
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeFileParseError))
		})
	}
}

func TestExcelReader_Corrupt(t *testing.T) {
	_, err := Open(context.Background(), FileTypeSpreadsheet, strings.NewReader("this is not a zip archive"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeFileParseError))
}

func TestExcelReader_Empty(t *testing.T) {
	data := buildWorkbook(t, nil)

	r, err := Open(context.Background(), FileTypeSpreadsheet, bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	assert.Nil(t, r.Header())
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpenFile(t *testing.T) {
	r, err := OpenFile(context.Background(), "products.csv", strings.NewReader("name\nGauze\n"))
	require.NoError(t, err)
	rows, err := ReadAll(context.Background(), r)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = OpenFile(context.Background(), "products.txt", strings.NewReader(""))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnsupportedFormat))
}
