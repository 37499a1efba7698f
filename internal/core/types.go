// Package core provides the vacancy statistics engine.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input column names.
const (
	ColName        = "name"
	ColDescription = "description"
	ColKeySkills   = "key_skills"
	ColExperience  = "experience_id"
	ColPremium     = "premium"
	ColEmployer    = "employer_name"
	ColSalaryFrom  = "salary_from"
	ColSalaryTo    = "salary_to"
	ColSalaryGross = "salary_gross"
	ColCurrency    = "salary_currency"
	ColArea        = "area_name"
	ColPublishedAt = "published_at"
)

// RequiredColumns are the columns the aggregation engine consumes.
var RequiredColumns = []string{
	ColName,
	ColSalaryFrom,
	ColSalaryTo,
	ColCurrency,
	ColArea,
	ColPublishedAt,
}

// HeaderIndex maps column names to their position in a CSV row.
type HeaderIndex map[string]int

// SalaryRange is the salary fork of a posting in its original currency.
type SalaryRange struct {
	From     int64
	To       int64
	Currency Currency
}

// Midpoint returns the middle of the range converted into the reference currency.
func (s SalaryRange) Midpoint() (decimal.Decimal, error) {
	rate, err := Rate(s.Currency)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.NewFromInt(s.From).Add(decimal.NewFromInt(s.To))
	return sum.Div(decimal.NewFromInt(2)).Mul(rate), nil
}

// JobRecord is one normalized posting.
// Title, Salary, Region and Year feed the engine; the remaining fields are
// populated only when their columns exist and are carried for reports.
type JobRecord struct {
	Title  string
	Salary SalaryRange
	Region string
	Year   int

	Description string
	Skills      []string
	Experience  Experience
	Premium     bool
	Employer    string
}

// YearPoint is one entry of a dense per-year series.
type YearPoint struct {
	Year  int   `json:"year"`
	Value int64 `json:"value"`
}

// YearSeries is ordered by year ascending with no gaps.
type YearSeries []YearPoint

// Years returns the years covered by the series.
func (s YearSeries) Years() []int {
	years := make([]int, len(s))
	for i, p := range s {
		years[i] = p.Year
	}
	return years
}

// Value returns the value recorded for year, or false if year is out of range.
func (s YearSeries) Value(year int) (int64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	i := year - s[0].Year
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i].Value, true
}

// RegionSalary is one entry of the salary-ranked view.
type RegionSalary struct {
	Region string `json:"region"`
	Salary int64  `json:"salary"`
}

// SalaryView lists regions by average salary, highest first.
type SalaryView []RegionSalary

// RegionShare is one entry of the share-ranked view.
// Share is a fraction of all records rounded to four decimal digits.
type RegionShare struct {
	Region string          `json:"region"`
	Share  decimal.Decimal `json:"share"`
}

// ShareView lists regions by share of postings, highest first.
type ShareView []RegionShare

// Total returns the sum of all shares in the view.
func (v ShareView) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range v {
		total = total.Add(e.Share)
	}
	return total
}

// Other returns the share of postings outside the view's regions.
func (v ShareView) Other() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(v.Total())
}

// AggregationResult bundles everything one aggregation run produces.
// All four year series cover the same contiguous range of years.
type AggregationResult struct {
	TitleFilter string `json:"title_filter"`

	SalaryByYear         YearSeries `json:"salary_by_year"`
	CountByYear          YearSeries `json:"count_by_year"`
	FilteredSalaryByYear YearSeries `json:"filtered_salary_by_year"`
	FilteredCountByYear  YearSeries `json:"filtered_count_by_year"`

	SalaryByRegion SalaryView `json:"salary_by_region"`
	ShareByRegion  ShareView  `json:"share_by_region"`

	TotalRecords    int `json:"total_records"`
	MinSupport      int `json:"min_support"`
	EligibleRegions int `json:"eligible_regions"`
}

// Analysis is the outcome of one Service run.
type Analysis struct {
	ID       string             `json:"analysis_id"`
	FileName string             `json:"file_name,omitempty"`
	Rows     int                `json:"rows"`
	Kept     int                `json:"kept"`
	Dropped  int                `json:"dropped"`
	Duration time.Duration      `json:"duration"`
	Result   *AggregationResult `json:"result"`
}
