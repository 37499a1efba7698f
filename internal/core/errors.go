package core

// errors.go defines the failure vocabulary of an analysis run.
//
// Every fatal condition is a sentinel error so callers can branch with
// errors.Is. Errors that need context (which currency, which row) wrap the
// sentinel in a typed error that callers can inspect with errors.As.
//
// Rows dropped by the structural filter are not errors. They are reported
// through the Dropped count of an Analysis.

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when the input has no data rows after the header.
	ErrEmptyInput = errors.New("empty file: no data rows after header")

	// ErrNoData is returned when aggregation is asked to run over zero records.
	ErrNoData = errors.New("no data: no valid records to aggregate")

	// ErrUnknownCurrency is returned when a record uses a currency outside the vocabulary.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrMalformedNumber is returned when a salary bound that passed the filter is not a number.
	ErrMalformedNumber = errors.New("invalid number")

	// ErrMalformedDate is returned when a publication date that passed the filter cannot be parsed.
	ErrMalformedDate = errors.New("invalid date")

	// ErrMissingColumns is returned when the header lacks a column the engine consumes.
	ErrMissingColumns = errors.New("missing required column")

	// ErrInvalidCSV is returned when the input is not syntactically valid CSV.
	ErrInvalidCSV = errors.New("invalid csv")
)

// CurrencyError reports the offending code for an ErrUnknownCurrency failure.
type CurrencyError struct {
	Code string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownCurrency.Error(), e.Code)
}

func (e *CurrencyError) Unwrap() error {
	return ErrUnknownCurrency
}

// RowError locates a normalization failure in the input.
// Line is the 1-indexed CSV line of the row (header is line 1).
type RowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s for %q: %q", e.Line, e.Err.Error(), e.Column, e.Value)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// MissingColumnsError lists every required column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%ss: %s", ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// IsInputError reports whether err describes a problem with the caller's file
// rather than a fault in the engine itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrMissingColumns) ||
		errors.Is(err, ErrInvalidCSV)
}

// IsIntegrityError reports whether err means a row passed the structural
// filter but its content could not be used. These abort the whole run.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrUnknownCurrency) ||
		errors.Is(err, ErrMalformedNumber) ||
		errors.Is(err, ErrMalformedDate)
}
