package core

// ranking.go selects the regions shown in the two ranked views.
//
// A region is eligible when it holds at least 1% of all records (integer
// floor). Eligibility is computed once and both views sort copies of the
// same eligible set, so neither ordering affects the other. Ties keep the
// order in which regions first appeared in the input.

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// TopRegions is the maximum length of a ranked view.
const TopRegions = 10

// shareDigits is the number of decimal digits kept in a posting share.
const shareDigits = 4

// MinSupport returns the minimum record count a region needs to be ranked.
func MinSupport(total int) int {
	return total / 100
}

// eligibleRegions returns the buckets with at least minSupport records,
// in their original order. The input slice is not modified.
func eligibleRegions(buckets []regionBucket, minSupport int) []regionBucket {
	out := make([]regionBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.count >= minSupport {
			out = append(out, b)
		}
	}
	return out
}

// topByAverageSalary ranks regions by mean salary, highest first.
// Salaries are truncated to whole units.
func topByAverageSalary(eligible []regionBucket) SalaryView {
	ranked := make([]regionBucket, len(eligible))
	copy(ranked, eligible)

	// sum_i/count_i > sum_j/count_j compared by cross-multiplication, so
	// means that differ only past the division precision still order correctly.
	sort.SliceStable(ranked, func(i, j int) bool {
		left := ranked[i].sum.Mul(decimal.NewFromInt(int64(ranked[j].count)))
		right := ranked[j].sum.Mul(decimal.NewFromInt(int64(ranked[i].count)))
		if !left.Equal(right) {
			return left.GreaterThan(right)
		}
		return ranked[i].seq < ranked[j].seq
	})

	n := min(len(ranked), TopRegions)
	view := make(SalaryView, n)
	for i := 0; i < n; i++ {
		view[i] = RegionSalary{
			Region: ranked[i].region,
			Salary: ranked[i].average(),
		}
	}
	return view
}

// topByPostingShare ranks regions by their fraction of all records,
// highest first. Shares are rounded to four digits.
func topByPostingShare(eligible []regionBucket, total int) ShareView {
	if total <= 0 {
		return ShareView{}
	}
	ranked := make([]regionBucket, len(eligible))
	copy(ranked, eligible)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].seq < ranked[j].seq
	})

	n := min(len(ranked), TopRegions)
	view := make(ShareView, n)
	for i := 0; i < n; i++ {
		view[i] = RegionShare{
			Region: ranked[i].region,
			Share:  postingShare(ranked[i].count, total),
		}
	}
	return view
}

// postingShare returns count/total rounded to shareDigits. The rounding is
// applied to the float64 quotient, so a decimal tie such as 33/800 rounds
// in whichever direction its binary value lies.
func postingShare(count, total int) decimal.Decimal {
	x := float64(count) / float64(total)
	return decimal.RequireFromString(strconv.FormatFloat(x, 'f', shareDigits, 64))
}
