package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/medisupply/product-import/internal/validation"
)

const (
	templateSheet      = "products"
	instructionsSheet  = "instructions"
	exampleProviderID  = "00000000-0000-0000-0000-000000000000"
	templateColumnWide = 32
)

// templateExamples are two rows that pass validation as they are.
var templateExamples = [][]interface{}{
	{"Sterile Gauze", "Sterile gauze pads, 10x10 cm, box of 100", "Bogota Central", "LOT-2025-01",
		"https://cdn.example.com/products/gauze.png", "2026-06-30", 100, 2.5, exampleProviderID},
	{"Surgical Mask", "Three layer disposable surgical mask", "Bogota Central", "LOT-2025-02",
		"", "2026-12-31", 500, 0.75, exampleProviderID},
}

var templateInstructions = [][]interface{}{
	{"column", "rule"},
	{validation.ColName, fmt.Sprintf("required, %d to %d characters", validation.NameMinLen, validation.NameMaxLen)},
	{validation.ColDetails, fmt.Sprintf("required, %d to %d characters", validation.DetailsMinLen, validation.DetailsMaxLen)},
	{validation.ColStore, fmt.Sprintf("required, %d to %d characters", validation.StoreMinLen, validation.StoreMaxLen)},
	{validation.ColBatch, fmt.Sprintf("required, %d to %d characters", validation.BatchMinLen, validation.BatchMaxLen)},
	{validation.ColImageURL, fmt.Sprintf("optional, %d to %d characters", validation.ImageURLMinLen, validation.ImageURLMaxLen)},
	{validation.ColDueDate, "required, YYYY-MM-DD"},
	{validation.ColStock, "required, whole number greater than 0"},
	{validation.ColPricePerUnit, "required, number greater than 0"},
	{validation.ColProviderID, fmt.Sprintf("required, exactly %d characters", validation.ProviderIDLen)},
}

// templateService builds each template once and serves the cached bytes.
type templateService struct {
	xlsx func() ([]byte, error)
	csv  func() ([]byte, error)
	log  zerolog.Logger
}

func newTemplateService(log zerolog.Logger) *templateService {
	s := &templateService{
		log: log.With().Str("service", "template").Logger(),
	}
	s.xlsx = sync.OnceValues(s.buildXLSX)
	s.csv = sync.OnceValues(buildCSV)
	return s
}

// XLSX returns the spreadsheet template. Callers must not modify the slice.
func (s *templateService) XLSX() ([]byte, error) {
	return s.xlsx()
}

// CSV returns the delimited-text template. Callers must not modify the slice.
func (s *templateService) CSV() ([]byte, error) {
	return s.csv()
}

func (s *templateService) buildXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(validation.Columns))
	for i, col := range validation.Columns {
		header[i] = col
	}
	rows := append([][]interface{}{header}, templateExamples...)
	if err := writeRows(f, templateSheet, rows); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(validation.Columns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(templateSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(templateSheet, "A", lastCol, templateColumnWide); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	// Rules go on a second sheet; imports only read the first one.
	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return nil, fmt.Errorf("create instructions sheet: %w", err)
	}
	if err := writeRows(f, instructionsSheet, templateInstructions); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}

	s.log.Debug().Int("bytes", buf.Len()).Msg("Excel template built")
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func buildCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(validation.Columns); err != nil {
		return nil, err
	}
	for _, example := range templateExamples {
		record := make([]string, len(example))
		for i, v := range example {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
