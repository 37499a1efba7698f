// Package core provides the vacancy statistics engine.
//
// This package holds all domain logic independent of any UI or transport
// layer. It is used by the HTTP server, the CLI and tests without
// modification.
//
// # Pipeline
//
// One analysis run is synchronous and single-threaded:
//
//  1. [ReadDataset] strips the BOM, repairs invalid UTF-8 and splits the CSV
//     into a header and raw rows
//  2. [ValidateHeader] checks for the required columns and [FilterRows]
//     drops rows with a wrong field count or an empty field
//  3. [Normalizer] cleans every cell and builds typed [JobRecord] values
//  4. [Aggregate] buckets records by year and by region and ranks the
//     regions that hold at least 1% of all records
//
// [Service.Analyze] runs the whole pipeline and returns an [Analysis].
//
// # Arithmetic
//
// Salaries are converted into roubles with the fixed rates of [Rate] and
// summed as exact decimals. Per-year and per-region means are truncated
// toward zero; region shares are float64 fractions rounded to four digits.
//
// # Error Handling
//
// Fatal conditions are sentinel errors ([ErrEmptyInput], [ErrNoData],
// [ErrMissingColumns], [ErrInvalidCSV], [ErrUnknownCurrency],
// [ErrMalformedNumber], [ErrMalformedDate]). Technical errors are mapped to
// user-friendly messages with support codes by [MapError].
package core
