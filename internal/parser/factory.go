package parser

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/medisupply/product-import/internal/apperrors"
)

// extensions maps accepted file extensions to their decoder.
var extensions = map[string]FileType{
	".csv":  FileTypeCSV,
	".xlsx": FileTypeSpreadsheet,
	".xls":  FileTypeLegacyExcel,
}

// Detect picks the decoder from the file name's extension. Content is never
// sniffed.
func Detect(filename string) (FileType, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType, ok := extensions[ext]
	if !ok {
		return "", apperrors.UnsupportedFormat(ext)
	}
	return fileType, nil
}

// SupportedExtensions returns the accepted extensions in a stable order.
func SupportedExtensions() []string {
	return []string{".csv", ".xlsx", ".xls"}
}

// Open starts decoding r as fileType. Decoder failures come back as
// apperrors.ParseError; ctx is checked between rows.
func Open(ctx context.Context, fileType FileType, r io.Reader) (RowReader, error) {
	switch fileType {
	case FileTypeCSV:
		return newCSVReader(ctx, r)
	case FileTypeSpreadsheet:
		return newExcelReader(ctx, r)
	case FileTypeLegacyExcel:
		return newXLSReader(ctx, r)
	default:
		return nil, apperrors.UnsupportedFormat(string(fileType))
	}
}

// OpenFile detects the type from filename and opens r with it.
func OpenFile(ctx context.Context, filename string, r io.Reader) (RowReader, error) {
	fileType, err := Detect(filename)
	if err != nil {
		return nil, err
	}
	return Open(ctx, fileType, r)
}
