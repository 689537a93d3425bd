package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/medisupply/product-import/internal/models"
)

// Column names of a product import file.
const (
	ColName         = "name"
	ColDetails      = "details"
	ColStore        = "store"
	ColBatch        = "batch"
	ColImageURL     = "image_url"
	ColDueDate      = "due_date"
	ColStock        = "stock"
	ColPricePerUnit = "price_per_unite"
	ColProviderID   = "provider_id"
)

// Columns lists the import columns in template order.
var Columns = []string{
	ColName, ColDetails, ColStore, ColBatch, ColImageURL,
	ColDueDate, ColStock, ColPricePerUnit, ColProviderID,
}

// Field length bounds, inclusive, counted in characters after trimming.
const (
	NameMinLen     = 3
	NameMaxLen     = 100
	DetailsMinLen  = 10
	DetailsMaxLen  = 500
	StoreMinLen    = 3
	StoreMaxLen    = 100
	BatchMinLen    = 5
	BatchMaxLen    = 50
	ImageURLMinLen = 10
	ImageURLMaxLen = 300
	ProviderIDLen  = 36
)

const dueDateLayout = "2006-01-02"

var dueDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError represents a single broken rule
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Validator checks product rows against the import rules. It holds no state
// between rows, so one instance can validate any number of files.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRows validates every row independently. A row with no broken rules
// becomes a record; a row with any broken rule contributes one RowError
// listing all of them and no record. Empty input yields two empty slices.
func (v *Validator) ValidateRows(rows []models.NumberedRow) ([]models.ProductCreateRequest, []models.RowError) {
	records := make([]models.ProductCreateRequest, 0, len(rows))
	rowErrors := make([]models.RowError, 0)

	for _, row := range rows {
		record, errs := v.ValidateProduct(row.Values)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, models.RowError{
				Line:    row.Line,
				Message: joinMessages(errs),
			})
			continue
		}
		records = append(records, record)
	}

	return records, rowErrors
}

// ValidateProduct validates one row. The record is only meaningful when no
// errors are returned.
func (v *Validator) ValidateProduct(row models.RawRow) (models.ProductCreateRequest, []ValidationError) {
	var errors []ValidationError
	var record models.ProductCreateRequest

	record.Name = validateLength(&errors, row, ColName, NameMinLen, NameMaxLen)
	record.Details = validateLength(&errors, row, ColDetails, DetailsMinLen, DetailsMaxLen)
	record.Store = validateLength(&errors, row, ColStore, StoreMinLen, StoreMaxLen)
	record.Batch = validateLength(&errors, row, ColBatch, BatchMinLen, BatchMaxLen)

	// Validate image_url (optional)
	if imageURL := cell(row, ColImageURL); imageURL != "" {
		if !between(imageURL, ImageURLMinLen, ImageURLMaxLen) {
			errors = append(errors, lengthError(ColImageURL, imageURL, ImageURLMinLen, ImageURLMaxLen))
		} else {
			record.ImageURL = &imageURL
		}
	}

	// Validate due_date
	dueDate := cell(row, ColDueDate)
	switch {
	case dueDate == "":
		errors = append(errors, requiredError(ColDueDate))
	case !dueDateRegex.MatchString(dueDate):
		errors = append(errors, ValidationError{Field: ColDueDate, Message: "due_date must use the YYYY-MM-DD format", Value: dueDate})
	default:
		if _, err := time.Parse(dueDateLayout, dueDate); err != nil {
			errors = append(errors, ValidationError{Field: ColDueDate, Message: "due_date is not a valid calendar date", Value: dueDate})
		} else {
			record.DueDate = dueDate
		}
	}

	// Validate stock
	if stock, ok := validatePositive(&errors, row, ColStock); ok {
		switch {
		case stock != math.Trunc(stock):
			errors = append(errors, ValidationError{Field: ColStock, Message: "stock must be a whole number", Value: cell(row, ColStock)})
		case stock > math.MaxInt32:
			errors = append(errors, ValidationError{Field: ColStock, Message: fmt.Sprintf("stock must not exceed %d", math.MaxInt32), Value: cell(row, ColStock)})
		default:
			record.Stock = int(stock)
		}
	}

	// Validate price_per_unite
	if price, ok := validatePositive(&errors, row, ColPricePerUnit); ok {
		record.PricePerUnit = price
	}

	// Validate provider_id: only the length is checked
	providerID := cell(row, ColProviderID)
	switch {
	case providerID == "":
		errors = append(errors, requiredError(ColProviderID))
	case utf8.RuneCountInString(providerID) != ProviderIDLen:
		errors = append(errors, ValidationError{
			Field:   ColProviderID,
			Message: fmt.Sprintf("provider_id must be exactly %d characters", ProviderIDLen),
			Value:   providerID,
		})
	default:
		record.ProviderID = providerID
	}

	return record, errors
}

// cell returns the trimmed value of a column; blank and missing are the same.
func cell(row models.RawRow, col string) string {
	return strings.TrimSpace(row[col])
}

func between(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func validateLength(errors *[]ValidationError, row models.RawRow, col string, min, max int) string {
	value := cell(row, col)
	if value == "" {
		*errors = append(*errors, requiredError(col))
		return ""
	}
	if !between(value, min, max) {
		*errors = append(*errors, lengthError(col, value, min, max))
		return ""
	}
	return value
}

func validatePositive(errors *[]ValidationError, row models.RawRow, col string) (float64, bool) {
	raw := cell(row, col)
	if raw == "" {
		*errors = append(*errors, requiredError(col))
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		*errors = append(*errors, ValidationError{Field: col, Message: col + " must be a number", Value: raw})
		return 0, false
	}
	if n <= 0 {
		*errors = append(*errors, ValidationError{Field: col, Message: col + " must be greater than 0", Value: raw})
		return 0, false
	}
	return n, true
}

func requiredError(col string) ValidationError {
	return ValidationError{Field: col, Message: col + " is required"}
}

func lengthError(col, value string, min, max int) ValidationError {
	return ValidationError{
		Field:   col,
		Message: fmt.Sprintf("%s must be between %d and %d characters", col, min, max),
		Value:   value,
	}
}

func joinMessages(errs []ValidationError) string {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return strings.Join(messages, ", ")
}
