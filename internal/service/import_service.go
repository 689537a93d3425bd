package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/metrics"
	"github.com/medisupply/product-import/internal/models"
	"github.com/medisupply/product-import/internal/parser"
)

// RowValidator turns parsed rows into upload records and row errors
type RowValidator interface {
	ValidateRows(rows []models.NumberedRow) ([]models.ProductCreateRequest, []models.RowError)
}

// importService is the concrete implementation of ImportService
type importService struct {
	validator RowValidator
	uploader  Uploader
	log       zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(validator RowValidator, uploader Uploader, log zerolog.Logger) *importService {
	return &importService{
		validator: validator,
		uploader:  uploader,
		log:       log.With().Str("service", "import").Logger(),
	}
}

// attempt tracks one import through its states.
type attempt struct {
	id       string
	state    models.ImportState
	fileType parser.FileType
	log      zerolog.Logger
}

func (a *attempt) moveTo(next models.ImportState) {
	if !a.state.CanTransition(next) {
		panic(fmt.Sprintf("import %s: invalid transition %s -> %s", a.id, a.state, next))
	}
	a.log.Debug().Str("from", string(a.state)).Str("to", string(next)).Msg("Import state changed")
	a.state = next
}

// Import runs one attempt: parse, validate, and upload only when every row is
// valid. Parse and transport failures are returned as errors; every other
// outcome is a report.
func (s *importService) Import(ctx context.Context, filename string, r io.Reader) (*models.ImportReport, error) {
	timer := metrics.NewTimer()
	a := &attempt{
		id:    uuid.New().String(),
		state: models.ImportStateIdle,
	}
	a.log = s.log.With().Str("import_id", a.id).Str("file", filename).Logger()

	report, err := s.run(ctx, a, filename, r)
	if err != nil {
		a.moveTo(models.ImportStateFailed)
		metrics.RecordImport(string(models.ImportStateFailed), string(a.fileType), timer.Duration())

		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			a.log.Warn().Err(err).Dur("duration", timer.Duration()).Msg("Import canceled")
			return nil, apperrors.Canceled(err)
		}
		a.log.Error().Err(err).Dur("duration", timer.Duration()).Msg("Import failed")
		return nil, err
	}

	a.moveTo(models.ImportStateReportReady)
	metrics.RecordImport(string(report.Status), string(a.fileType), timer.Duration())

	a.log.Info().
		Str("status", string(report.Status)).
		Int("rows_total", report.RowsTotal).
		Int("rows_inserted", report.RowsInserted).
		Int("errors", report.Errors).
		Dur("duration", timer.Duration()).
		Msg("Import completed")

	return report, nil
}

func (s *importService) run(ctx context.Context, a *attempt, filename string, r io.Reader) (*models.ImportReport, error) {
	a.moveTo(models.ImportStateParsing)

	fileType, err := parser.Detect(filename)
	if err != nil {
		return nil, err
	}
	a.fileType = fileType

	reader, err := parser.Open(ctx, fileType, r)
	if err != nil {
		return nil, err
	}
	rows, err := parser.ReadAll(ctx, reader)
	reader.Close()
	if err != nil {
		return nil, err
	}

	a.moveTo(models.ImportStateValidating)

	records, rowErrors := s.validator.ValidateRows(rows)
	metrics.RecordValidation(len(records), len(rowErrors))

	a.log.Info().
		Str("file_type", string(fileType)).
		Int("rows", len(rows)).
		Int("valid", len(records)).
		Int("invalid", len(rowErrors)).
		Msg("Rows validated")

	if len(rows) == 0 {
		return newEmptyReport(a.id), nil
	}
	if len(rowErrors) > 0 {
		return newValidationReport(a.id, len(rows), rowErrors), nil
	}

	a.moveTo(models.ImportStateUploading)

	resp, err := s.uploader.Upload(ctx, records)
	if err != nil {
		return nil, err
	}

	return newUploadReport(a.id, resp), nil
}
