package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgreSQL error codes the catalog reacts to
const (
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqCheckViolation      pq.ErrorCode = "23514"
	pqInvalidText         pq.ErrorCode = "22P02"
	pqInvalidDatetime     pq.ErrorCode = "22008"
)

// mapError converts driver errors into repository sentinels, keeping the
// original error in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrProviderMissing, pqErr.Constraint)
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	case pqCheckViolation, pqInvalidText, pqInvalidDatetime:
		return fmt.Errorf("%w: %s", ErrInvalidValue, pqErr.Message)
	default:
		return err
	}
}
