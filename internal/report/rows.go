package report

import (
	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/dustin/go-humanize"
)

// OtherRegionsLabel names the slice of postings outside the top regions.
const OtherRegionsLabel = "Другие"

// YearRow is one line of the per-year table.
type YearRow struct {
	Year           int
	Salary         int64
	FilteredSalary int64
	Count          int64
	FilteredCount  int64
}

// YearRows zips the four year series into table rows.
func YearRows(res *core.AggregationResult) []YearRow {
	rows := make([]YearRow, len(res.SalaryByYear))
	for i, p := range res.SalaryByYear {
		rows[i] = YearRow{
			Year:           p.Year,
			Salary:         p.Value,
			FilteredSalary: valueAt(res.FilteredSalaryByYear, i),
			Count:          valueAt(res.CountByYear, i),
			FilteredCount:  valueAt(res.FilteredCountByYear, i),
		}
	}
	return rows
}

func valueAt(s core.YearSeries, i int) int64 {
	if i < len(s) {
		return s[i].Value
	}
	return 0
}

// RegionRow puts the i-th entry of each ranked view side by side.
// Either half is empty when its view is shorter than the other.
type RegionRow struct {
	SalaryRegion string
	Salary       string
	ShareRegion  string
	Share        string
}

// RegionRows lays out the two ranked views as one table.
// Salaries get thousands separators and shares are percentages.
func RegionRows(res *core.AggregationResult) []RegionRow {
	n := max(len(res.SalaryByRegion), len(res.ShareByRegion))
	rows := make([]RegionRow, n)
	for i := range rows {
		if i < len(res.SalaryByRegion) {
			e := res.SalaryByRegion[i]
			rows[i].SalaryRegion = e.Region
			rows[i].Salary = humanize.Comma(e.Salary)
		}
		if i < len(res.ShareByRegion) {
			e := res.ShareByRegion[i]
			rows[i].ShareRegion = e.Region
			rows[i].Share = FormatShare(e.Share)
		}
	}
	return rows
}

// OtherShare returns the formatted share of postings outside the share view.
func OtherShare(res *core.AggregationResult) string {
	return FormatShare(res.ShareByRegion.Other())
}

// YearHeader returns the per-year table header for a title filter.
func YearHeader(title string) []string {
	return []string{
		"Год",
		"Средняя зарплата",
		"Средняя зарплата - " + title,
		"Количество вакансий",
		"Количество вакансий - " + title,
	}
}

// RegionHeader returns the region table header.
func RegionHeader() []string {
	return []string{"Город", "Уровень зарплат", "Город", "Доля вакансий"}
}
