package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// summaryLines labels the six statistics in print order.
var summaryLines = []string{
	"Динамика уровня зарплат по годам",
	"Динамика количества вакансий по годам",
	"Динамика уровня зарплат по годам для выбранной профессии",
	"Динамика количества вакансий по годам для выбранной профессии",
	"Уровень зарплат по городам (в порядке убывания)",
	"Доля вакансий по городам (в порядке убывания)",
}

// WriteSummary prints one "label: {key: value, ...}" line per statistic.
func WriteSummary(w io.Writer, res *core.AggregationResult) error {
	values := []string{
		FormatYearSeries(res.SalaryByYear),
		FormatYearSeries(res.CountByYear),
		FormatYearSeries(res.FilteredSalaryByYear),
		FormatYearSeries(res.FilteredCountByYear),
		FormatSalaryView(res.SalaryByRegion),
		FormatShareView(res.ShareByRegion),
	}
	for i, label := range summaryLines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", label, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTables renders the year and region statistics as terminal tables.
func WriteTables(w io.Writer, res *core.AggregationResult) error {
	years := pterm.TableData{YearHeader(res.TitleFilter)}
	for _, r := range YearRows(res) {
		years = append(years, []string{
			strconv.Itoa(r.Year),
			humanize.Comma(r.Salary),
			humanize.Comma(r.FilteredSalary),
			humanize.Comma(r.Count),
			humanize.Comma(r.FilteredCount),
		})
	}

	regions := pterm.TableData{RegionHeader()}
	for _, r := range RegionRows(res) {
		regions = append(regions, []string{r.SalaryRegion, r.Salary, r.ShareRegion, r.Share})
	}
	regions = append(regions, []string{"", "", OtherRegionsLabel, OtherShare(res)})

	yearTable, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(years).Srender()
	if err != nil {
		return fmt.Errorf("render year table: %w", err)
	}
	regionTable, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(regions).Srender()
	if err != nil {
		return fmt.Errorf("render region table: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n\n%s\n%s\n%s\n",
		pterm.LightCyan("Статистика по годам"),
		yearTable,
		pterm.LightCyan("Статистика по городам"),
		regionTable,
		pterm.Gray(fmt.Sprintf("Вакансий: %s, регионов в выборке: %d (не менее %d вакансий)",
			humanize.Comma(int64(res.TotalRecords)), res.EligibleRegions, res.MinSupport)),
	)
	return err
}

// WriteJSON writes the analysis as indented JSON.
func WriteJSON(w io.Writer, a *core.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
