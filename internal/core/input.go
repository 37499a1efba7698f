package core

// input.go turns raw CSV bytes into a header and a list of raw rows.
//
// The whole input is held in memory for one run. Before parsing:
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF) is removed, as Windows exports add one
//   - invalid UTF-8 sequences are replaced with U+FFFD
//
// Parsing is lenient about quotes and never enforces a field count; rows
// with the wrong number of fields are left for the row filter to discard.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawRow is one data row exactly as it appeared in the file.
type RawRow struct {
	Line   int // 1-indexed line where the record starts
	Fields []string
}

// Dataset is a parsed input file before filtering and normalization.
type Dataset struct {
	Header []string
	Rows   []RawRow
}

// sanitizeInput strips the BOM and repairs invalid UTF-8.
func sanitizeInput(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}
	return data
}

// ReadDataset reads a complete CSV input.
// Returns ErrEmptyInput if there is no header or no data row after it,
// and ErrInvalidCSV if the CSV cannot be parsed.
func ReadDataset(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(sanitizeInput(data)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidCSV, err)
	}

	ds := &Dataset{Header: cleanHeader(header)}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		line, _ := cr.FieldPos(0)
		ds.Rows = append(ds.Rows, RawRow{Line: line, Fields: fields})
	}

	if len(ds.Rows) == 0 {
		return nil, ErrEmptyInput
	}
	return ds, nil
}

// cleanHeader trims stray whitespace around column names.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}
