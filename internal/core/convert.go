package core

// convert.go turns filtered raw rows into typed JobRecords.
//
// Every cell goes through the same cleaning, whatever column it belongs to:
//   - markup spans like <p> or </strong> are removed
//   - whitespace runs (including line breaks) collapse to a single space
//   - a cell with an internal line break becomes several cleaned values
//
// Salary bounds are parsed as decimals and truncated toward zero. The
// publication date keeps only its calendar year, read in the date's own offset.

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// markupRegex matches one angle-bracket span.
var markupRegex = regexp.MustCompile(`<[^>]+>`)

// publishedLayouts accept both "+0300" and "+03:00" offsets, and "Z".
var publishedLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z07:00",
}

var maxBound = decimal.NewFromInt(math.MaxInt64)

// CleanText strips markup spans and collapses whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(markupRegex.ReplaceAllString(s, "")), " ")
}

// Value is a normalized cell. Single-line cells have exactly one part.
type Value []string

// NormalizeCell cleans a raw cell, splitting it on line breaks first.
func NormalizeCell(raw string) Value {
	if !strings.Contains(raw, "\n") {
		return Value{CleanText(raw)}
	}
	parts := strings.Split(raw, "\n")
	v := make(Value, len(parts))
	for i, p := range parts {
		v[i] = CleanText(p)
	}
	return v
}

// Multi reports whether the cell held more than one line.
func (v Value) Multi() bool {
	return len(v) > 1
}

// String joins the non-empty parts with single spaces.
func (v Value) String() string {
	if len(v) == 1 {
		return v[0]
	}
	return strings.Join(v.NonEmpty(), " ")
}

// NonEmpty returns the parts that are not empty after cleaning.
func (v Value) NonEmpty() []string {
	out := make([]string, 0, len(v))
	for _, p := range v {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeFields cleans every field of a row.
func NormalizeFields(fields []string) []Value {
	out := make([]Value, len(fields))
	for i, f := range fields {
		out[i] = NormalizeCell(f)
	}
	return out
}

// ParseSalaryBound parses a salary bound and truncates it toward zero.
func ParseSalaryBound(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformedNumber
	}
	d = d.Truncate(0)
	if d.Abs().GreaterThan(maxBound) {
		return 0, ErrMalformedNumber
	}
	return d.IntPart(), nil
}

// ParsePublishedYear returns the calendar year of an ISO-8601 timestamp with offset.
func ParsePublishedYear(s string) (int, error) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), nil
		}
	}
	return 0, ErrMalformedDate
}

// Normalizer builds JobRecords from rows shaped by one header.
type Normalizer struct {
	idx HeaderIndex
}

// NewNormalizer creates a normalizer for a validated header index.
func NewNormalizer(idx HeaderIndex) *Normalizer {
	return &Normalizer{idx: idx}
}

// Normalize converts one filtered row into a JobRecord.
// A parse failure returns a *RowError wrapping ErrMalformedNumber or
// ErrMalformedDate. Currency codes are not checked here; conversion
// rejects unknown codes during aggregation.
func (n *Normalizer) Normalize(row RawRow) (JobRecord, error) {
	values := NormalizeFields(row.Fields)
	get := func(col string) (Value, bool) {
		pos, ok := n.idx[col]
		if !ok || pos >= len(values) {
			return nil, false
		}
		return values[pos], true
	}
	text := func(col string) string {
		if v, ok := get(col); ok {
			return v.String()
		}
		return ""
	}
	rowErr := func(col string, err error) error {
		return &RowError{Line: row.Line, Column: col, Value: text(col), Err: err}
	}

	from, err := ParseSalaryBound(text(ColSalaryFrom))
	if err != nil {
		return JobRecord{}, rowErr(ColSalaryFrom, err)
	}
	to, err := ParseSalaryBound(text(ColSalaryTo))
	if err != nil {
		return JobRecord{}, rowErr(ColSalaryTo, err)
	}
	year, err := ParsePublishedYear(text(ColPublishedAt))
	if err != nil {
		return JobRecord{}, rowErr(ColPublishedAt, err)
	}

	rec := JobRecord{
		Title: text(ColName),
		Salary: SalaryRange{
			From:     from,
			To:       to,
			Currency: Currency(text(ColCurrency)),
		},
		Region:      text(ColArea),
		Year:        year,
		Description: text(ColDescription),
		Experience:  ParseExperience(text(ColExperience)),
		Premium:     text(ColPremium) == "True",
		Employer:    text(ColEmployer),
	}
	if skills, ok := get(ColKeySkills); ok {
		rec.Skills = skills.NonEmpty()
	}
	return rec, nil
}

// NormalizeRows converts every row, stopping at the first failure.
func (n *Normalizer) NormalizeRows(rows []RawRow) ([]JobRecord, error) {
	records := make([]JobRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := n.Normalize(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
