package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(ImportsTotal.WithLabelValues("completed"))
	RecordImport("completed", "csv", 10*time.Millisecond)

	if got := testutil.ToFloat64(ImportsTotal.WithLabelValues("completed")); got != before+1 {
		t.Errorf("imports completed = %v, want %v", got, before+1)
	}
}

func TestRecordValidation(t *testing.T) {
	validBefore := testutil.ToFloat64(RowsValidated.WithLabelValues(OutcomeValid))
	invalidBefore := testutil.ToFloat64(RowsValidated.WithLabelValues(OutcomeInvalid))

	RecordValidation(3, 2)

	if got := testutil.ToFloat64(RowsValidated.WithLabelValues(OutcomeValid)); got != validBefore+3 {
		t.Errorf("valid rows = %v, want %v", got, validBefore+3)
	}
	if got := testutil.ToFloat64(RowsValidated.WithLabelValues(OutcomeInvalid)); got != invalidBefore+2 {
		t.Errorf("invalid rows = %v, want %v", got, invalidBefore+2)
	}
}

func TestRecordUpload(t *testing.T) {
	okBefore := testutil.ToFloat64(UploadsTotal.WithLabelValues(ResultSuccess))
	failBefore := testutil.ToFloat64(UploadsTotal.WithLabelValues(ResultFailure))

	RecordUpload(nil, time.Millisecond)
	RecordUpload(errors.New("connection refused"), time.Millisecond)

	if got := testutil.ToFloat64(UploadsTotal.WithLabelValues(ResultSuccess)); got != okBefore+1 {
		t.Errorf("successful uploads = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(UploadsTotal.WithLabelValues(ResultFailure)); got != failBefore+1 {
		t.Errorf("failed uploads = %v, want %v", got, failBefore+1)
	}
}

func TestRecordProductCreate(t *testing.T) {
	before := testutil.ToFloat64(ProductsCreated.WithLabelValues(SourceBatch, ResultFailure))
	RecordProductCreate(SourceBatch, errors.New("provider not found"))

	if got := testutil.ToFloat64(ProductsCreated.WithLabelValues(SourceBatch, ResultFailure)); got != before+1 {
		t.Errorf("batch failures = %v, want %v", got, before+1)
	}
}
