package db

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"

	e "github.com/joblyhq/jobly-api/rest/errors"
)

// Constraint and input errors raised by the database that are caused by the request.
var clientErrorCodes = map[string]bool{
	"22001": true, // string_data_right_truncation
	"22003": true, // numeric_value_out_of_range
	"22P02": true, // invalid_text_representation
	"23502": true, // not_null_violation
	"23503": true, // foreign_key_violation
	"23505": true, // unique_violation
	"23514": true, // check_violation
}

func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && clientErrorCodes[string(pqErr.Code)] {
		return e.WrapValidationError(pqErr.Message, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && clientErrorCodes[pgErr.Code] {
		return e.WrapValidationError(pgErr.Message, err)
	}

	return err
}

// IsUniqueViolation reports whether err was raised by a unique constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
