package core

// aggregate.go builds the per-year and per-region statistics of a record set.
//
// Salaries are converted into the reference currency and accumulated as
// exact decimals. Means are truncated to whole units only when a series is
// produced, so intermediate sums never lose precision.

import (
	"strings"

	"github.com/shopspring/decimal"
)

// yearBucket accumulates one year of salaries.
type yearBucket struct {
	sum   decimal.Decimal
	count int
}

func (b *yearBucket) add(v decimal.Decimal) {
	b.sum = b.sum.Add(v)
	b.count++
}

// mean returns the truncated average, or 0 for an empty bucket.
func (b yearBucket) mean() int64 {
	if b.count == 0 {
		return 0
	}
	return truncatedMean(b.sum, b.count)
}

// truncatedMean returns sum/count truncated toward zero, computed exactly.
func truncatedMean(sum decimal.Decimal, count int) int64 {
	q, _ := sum.QuoRem(decimal.NewFromInt(int64(count)), 0)
	return q.IntPart()
}

// regionBucket accumulates one region's salaries.
// seq is the position of the region's first record in the input.
type regionBucket struct {
	region string
	seq    int
	sum    decimal.Decimal
	count  int
}

func (b regionBucket) average() int64 {
	return truncatedMean(b.sum, b.count)
}

// yearRange returns the first and last year observed in records.
func yearRange(records []JobRecord) (minYear, maxYear int) {
	minYear, maxYear = records[0].Year, records[0].Year
	for _, r := range records[1:] {
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	return minYear, maxYear
}

// Aggregate computes every statistic of the record set.
//
// The four year series cover every year from the earliest to the latest
// record, with 0 for years that have no records. Records whose title
// contains titleFilter (case-sensitive) also feed the filtered series.
// Region views are independent of the filter.
//
// Returns ErrNoData for an empty record set and a *CurrencyError for an
// unknown currency; no partial result is returned with an error.
func Aggregate(records []JobRecord, titleFilter string) (*AggregationResult, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	minYear, maxYear := yearRange(records)
	span := maxYear - minYear + 1
	all := make([]yearBucket, span)
	filtered := make([]yearBucket, span)

	regions := make([]regionBucket, 0)
	regionPos := make(map[string]int)

	for i, rec := range records {
		salary, err := rec.Salary.Midpoint()
		if err != nil {
			return nil, err
		}

		y := rec.Year - minYear
		all[y].add(salary)
		if strings.Contains(rec.Title, titleFilter) {
			filtered[y].add(salary)
		}

		pos, ok := regionPos[rec.Region]
		if !ok {
			pos = len(regions)
			regionPos[rec.Region] = pos
			regions = append(regions, regionBucket{region: rec.Region, seq: i})
		}
		regions[pos].sum = regions[pos].sum.Add(salary)
		regions[pos].count++
	}

	result := &AggregationResult{
		TitleFilter:          titleFilter,
		SalaryByYear:         make(YearSeries, span),
		CountByYear:          make(YearSeries, span),
		FilteredSalaryByYear: make(YearSeries, span),
		FilteredCountByYear:  make(YearSeries, span),
		TotalRecords:         len(records),
		MinSupport:           MinSupport(len(records)),
	}
	for i := 0; i < span; i++ {
		year := minYear + i
		result.SalaryByYear[i] = YearPoint{Year: year, Value: all[i].mean()}
		result.CountByYear[i] = YearPoint{Year: year, Value: int64(all[i].count)}
		result.FilteredSalaryByYear[i] = YearPoint{Year: year, Value: filtered[i].mean()}
		result.FilteredCountByYear[i] = YearPoint{Year: year, Value: int64(filtered[i].count)}
	}

	eligible := eligibleRegions(regions, result.MinSupport)
	result.EligibleRegions = len(eligible)
	result.SalaryByRegion = topByAverageSalary(eligible)
	result.ShareByRegion = topByPostingShare(eligible, len(records))

	return result, nil
}
