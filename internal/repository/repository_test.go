package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"foreign key", &pq.Error{Code: "23503", Constraint: "products_provider_id_fkey"}, ErrProviderMissing},
		{"unique", &pq.Error{Code: "23505", Constraint: "providers_rit_key"}, ErrDuplicate},
		{"check", &pq.Error{Code: "23514", Message: "violates check constraint"}, ErrInvalidValue},
		{"invalid uuid text", &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}, ErrInvalidValue},
		{"bad date", &pq.Error{Code: "22008", Message: "date/time field value out of range"}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError() = %v, want %v", got, tt.want)
			}

			var pqErr *pq.Error
			if errors.As(got, &pqErr) {
				t.Error("mapped error should not expose the driver error")
			}
		})
	}
}

func TestMapError_Passthrough(t *testing.T) {
	if mapError(nil) != nil {
		t.Error("nil should stay nil")
	}

	plain := errors.New("connection reset")
	if got := mapError(plain); got != plain {
		t.Errorf("non-driver error should pass through, got %v", got)
	}

	other := &pq.Error{Code: "40001"}
	if got := mapError(other); got != other {
		t.Errorf("unmapped driver error should pass through, got %v", got)
	}
}
