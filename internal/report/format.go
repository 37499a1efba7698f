// Package report renders an AggregationResult for people: the one-line
// console summary, terminal tables and the row models the HTML report uses.
package report

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatShare renders a share fraction as a percentage with two decimals
// and a decimal comma: 0.1234 becomes "12,34%".
func FormatShare(share decimal.Decimal) string {
	return strings.Replace(share.Mul(hundred).StringFixed(2), ".", ",", 1) + "%"
}

// formatFraction renders a share the way the summary line prints it:
// shortest digits, always with a fractional part ("1.0", "0.125").
func formatFraction(share decimal.Decimal) string {
	s := share.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote renders a region name as a single-quoted map key, switching to
// double quotes when the name itself holds a single quote.
func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// FormatYearSeries renders a series as {year: value, ...}.
func FormatYearSeries(series core.YearSeries) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range series {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(p.Year))
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(p.Value, 10))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatSalaryView renders a salary view as {'region': salary, ...}.
func FormatSalaryView(view core.SalaryView) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range view {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(e.Region))
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(e.Salary, 10))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatShareView renders a share view as {'region': fraction, ...}.
func FormatShareView(view core.ShareView) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range view {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(e.Region))
		b.WriteString(": ")
		b.WriteString(formatFraction(e.Share))
	}
	b.WriteByte('}')
	return b.String()
}
