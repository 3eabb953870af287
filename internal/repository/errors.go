package repository

import (
	"errors"
	"strings"

	"nagabalm/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// Classify maps a low-level database error to a typed domain error, or
// returns nil when the error carries no recognised classification. Callers
// wrap unclassified errors as internal failures.
//
// SQLSTATE classes: 08 (connection exception) and 28 (invalid authorization,
// e.g. bad database credentials) indicate the database is unreachable for us
// and map to an unavailable kind; 57 (operator intervention, shutdown) is
// treated the same. 23505 (unique violation) maps to a conflict.
func Classify(err error) *model.DomainError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return model.NewDomainError(model.KindConflict, model.ErrCodeDuplicateSlug,
				"Duplicate value for unique field")
		case strings.HasPrefix(pgErr.Code, "28"),
			strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "57"):
			return model.ErrDatabaseDown
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return model.ErrDatabaseDown
	}

	return nil
}

// wrapUnique maps a unique-violation error to the given conflict error,
// classifies connection failures, and otherwise returns nil so the caller
// can wrap the original error.
func wrapUnique(err error, conflict *model.DomainError) error {
	de := Classify(err)
	if de == nil {
		return nil
	}
	if de.Kind == model.KindConflict {
		return conflict
	}
	return de
}
