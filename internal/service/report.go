package service

import (
	"github.com/medisupply/product-import/internal/models"
)

// newEmptyReport is returned when the file had a header and nothing else.
func newEmptyReport(id string) *models.ImportReport {
	return &models.ImportReport{
		ID:            id,
		Status:        models.ImportStatusEmpty,
		Success:       false,
		ErrorsDetails: []string{},
	}
}

// newValidationReport describes a file that was rejected before upload. No
// row counts as inserted.
func newValidationReport(id string, rowsTotal int, rowErrors []models.RowError) *models.ImportReport {
	details := make([]string, len(rowErrors))
	for i, e := range rowErrors {
		details[i] = e.String()
	}

	return &models.ImportReport{
		ID:            id,
		Status:        models.ImportStatusValidationFailed,
		Success:       false,
		RowsTotal:     rowsTotal,
		RowsInserted:  0,
		Errors:        len(rowErrors),
		ErrorsDetails: details,
	}
}

// newUploadReport mirrors the catalog's counts and details as received.
func newUploadReport(id string, resp *models.ProductCreateBulkResponse) *models.ImportReport {
	status := models.ImportStatusCompleted
	if !resp.Success || resp.Errors > 0 {
		status = models.ImportStatusCompletedWithErrors
	}

	details := resp.ErrorsDetails
	if details == nil {
		details = []string{}
	}

	return &models.ImportReport{
		ID:            id,
		Status:        status,
		Success:       resp.Success,
		RowsTotal:     resp.RowsTotal,
		RowsInserted:  resp.RowsInserted,
		Errors:        resp.Errors,
		ErrorsDetails: details,
	}
}
