package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/config"
	"github.com/medisupply/product-import/internal/service"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the file itself.
const multipartOverhead = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler handles import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /v1/imports
// Accepts a multipart upload in the "file" field and answers with the report
func (h *ImportHandler) CreateImport(c *gin.Context) {
	maxSize := h.cfg.Import.MaxUploadSize
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.log, apperrors.FileTooLarge(maxSize))
			return
		}
		respondError(c, h.log, apperrors.BadRequest("file upload is required in the 'file' field"))
		return
	}
	defer file.Close()

	// Validate file size
	if header.Size > maxSize {
		respondError(c, h.log, apperrors.FileTooLarge(maxSize))
		return
	}

	h.log.Info().
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Import received")

	report, err := h.services.Import.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DownloadTemplate handles GET /v1/imports/template?format=xlsx|csv
func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)

	switch format {
	case "xlsx":
		data, err = h.services.Template.XLSX()
		contentType = xlsxContentType
		filename = "products_template.xlsx"
	case "csv":
		data, err = h.services.Template.CSV()
		contentType = "text/csv; charset=utf-8"
		filename = "products_template.csv"
	default:
		respondError(c, h.log, apperrors.BadRequest("format must be one of: xlsx, csv"))
		return
	}

	if err != nil {
		respondError(c, h.log, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to build template", http.StatusInternalServerError))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
