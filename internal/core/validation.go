package core

// validation.go checks the input header and gates raw rows before normalization.
//
// Validation happens at two levels:
//  1. Header validation: every column the engine consumes must be present
//  2. Row filtering: rows with the wrong field count or an empty field are dropped
//
// Dropped rows are routine data cleaning and never surface as errors.

// MakeHeaderIndex maps each column name to its position.
// When a name repeats, the last occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

// ValidateHeader builds the header index and checks for the required columns.
// Returns a *MissingColumnsError listing every absent column.
func ValidateHeader(header []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

// Keep reports whether a raw row is structurally usable: it has exactly
// headerLen fields and none of them is the empty string.
func Keep(headerLen int, fields []string) bool {
	if len(fields) != headerLen {
		return false
	}
	for _, f := range fields {
		if f == "" {
			return false
		}
	}
	return true
}

// FilterRows applies Keep to every row, preserving order.
func FilterRows(headerLen int, rows []RawRow) (kept []RawRow, dropped int) {
	kept = make([]RawRow, 0, len(rows))
	for _, row := range rows {
		if Keep(headerLen, row.Fields) {
			kept = append(kept, row)
			continue
		}
		dropped++
	}
	return kept, dropped
}
