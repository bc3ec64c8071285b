package salesdb

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingReference is returned when a sale row cannot resolve a
	// mandatory product, store, or payment method reference.
	ErrMissingReference = errors.New("mandatory reference unresolved")

	// ErrEmptyKey is returned when a natural key is empty after
	// normalization and no fallback applies.
	ErrEmptyKey = errors.New("empty natural key")

	// ErrNoConnection is returned when no database connection is available.
	ErrNoConnection = errors.New("no database connection")

	// ErrReadOnly is returned when a non-SELECT statement is submitted
	// through the read-only query surface.
	ErrReadOnly = errors.New("only read-only queries are allowed")
)

// QueryError represents a query execution error.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// RowError records a failure for one source row. Row is the 1-based data
// row index within the sheet, matching the numbering reported to the user.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("sheet %q row %d: %v", e.Sheet, e.Row, e.Err)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}
