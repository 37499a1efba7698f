package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func bucket(region string, seq int, sum string, count int) regionBucket {
	return regionBucket{region: region, seq: seq, sum: decimal.RequireFromString(sum), count: count}
}

func TestMinSupport(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{199, 1},
		{250, 2},
		{10000, 100},
	}
	for _, tt := range tests {
		if got := MinSupport(tt.total); got != tt.want {
			t.Errorf("MinSupport(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestEligibleRegions(t *testing.T) {
	buckets := []regionBucket{
		bucket("a", 0, "10", 3),
		bucket("b", 1, "10", 2),
		bucket("c", 2, "10", 1),
	}

	got := eligibleRegions(buckets, 2)
	if len(got) != 2 || got[0].region != "a" || got[1].region != "b" {
		t.Errorf("eligibleRegions = %+v, want a and b", got)
	}
	if len(buckets) != 3 {
		t.Error("input slice modified")
	}
}

func TestTopByAverageSalary_ExactComparison(t *testing.T) {
	// 10/3 is larger than 3.3333333333333333333, but the two agree to 16 digits.
	eligible := []regionBucket{
		bucket("b", 0, "3.3333333333333333333", 1),
		bucket("a", 1, "10", 3),
	}

	view := topByAverageSalary(eligible)
	if view[0].Region != "a" {
		t.Errorf("top region = %q, want a", view[0].Region)
	}
	if view[0].Salary != 3 || view[1].Salary != 3 {
		t.Errorf("salaries = %d, %d, want 3, 3", view[0].Salary, view[1].Salary)
	}
	if eligible[0].region != "b" {
		t.Error("eligible slice reordered")
	}
}

func TestTopByAverageSalary_HardTruncation(t *testing.T) {
	var eligible []regionBucket
	for i := 0; i < 12; i++ {
		eligible = append(eligible, bucket(string(rune('a'+i)), i, "100", 1))
	}

	view := topByAverageSalary(eligible)
	if len(view) != TopRegions {
		t.Fatalf("len = %d, want %d", len(view), TopRegions)
	}
	if view[9].Region != "j" {
		t.Errorf("10th region = %q, want j (first ten in input order)", view[9].Region)
	}
}

func TestTopByPostingShare_Rounding(t *testing.T) {
	tests := []struct {
		name  string
		count int
		total int
		want  string
	}{
		{"third", 1, 3, "0.3333"},
		{"two thirds", 2, 3, "0.6667"},
		{"exact", 1, 8, "0.125"},
		{"tie stored above", 33, 800, "0.0413"},
		{"tie stored below", 31, 800, "0.0387"},
		{"small tie stored above", 1, 800, "0.0013"},
		{"exact binary tie", 1, 32, "0.0312"},
		{"whole", 5, 5, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postingShare(tt.count, tt.total)
			if got.String() != tt.want {
				t.Errorf("postingShare(%d, %d) = %s, want %s", tt.count, tt.total, got, tt.want)
			}
		})
	}
}

func TestTopByPostingShare_Order(t *testing.T) {
	eligible := []regionBucket{
		bucket("a", 0, "0", 1),
		bucket("b", 1, "0", 3),
		bucket("c", 2, "0", 1),
		bucket("d", 3, "0", 3),
	}

	view := topByPostingShare(eligible, 8)
	want := []string{"b", "d", "a", "c"}
	for i, e := range view {
		if e.Region != want[i] {
			t.Errorf("[%d] = %q, want %q", i, e.Region, want[i])
		}
	}
	if !view.Total().Equal(decimal.NewFromInt(1)) {
		t.Errorf("Total() = %s, want 1", view.Total())
	}
}

func TestTopByPostingShare_NoTotal(t *testing.T) {
	if view := topByPostingShare(nil, 0); len(view) != 0 {
		t.Errorf("expected empty view, got %+v", view)
	}
}

func TestShareView_Other(t *testing.T) {
	view := ShareView{
		{Region: "a", Share: decimal.RequireFromString("0.5")},
		{Region: "b", Share: decimal.RequireFromString("0.2")},
	}
	if got := view.Other(); !got.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("Other() = %s, want 0.3", got)
	}
}
