package cmd

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/vacancystats/internal/config"
	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/JonMunkholm/vacancystats/internal/report"
	"github.com/spf13/cobra"
)

var outputFormats = []string{"summary", "table", "json"}

func newStatsCmd() *cobra.Command {
	var (
		title  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats <file.csv>",
		Short: "Compute salary and vacancy statistics for a CSV file",
		Long: `Compute year and region statistics for a job posting CSV export.

The file needs the columns name, salary_from, salary_to, salary_currency,
area_name and published_at. Rows with an empty field are skipped. The
--title filter selects postings whose name contains the given text
(case-sensitive) for the per-profession series.

Output formats:
  summary  six lines of year and region maps
  table    boxed terminal tables
  json     the full analysis as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q (want one of: %s)", format, strings.Join(outputFormats, ", "))
			}

			svc := core.NewService(config.Defaults())
			a, err := svc.AnalyzeFile(cmd.Context(), args[0], title)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "table":
				return report.WriteTables(out, a.Result)
			case "json":
				return report.WriteJSON(out, a)
			default:
				return report.WriteSummary(out, a.Result)
			}
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "profession name filter (substring of the posting name)")
	cmd.Flags().StringVarP(&format, "format", "f", "summary", "output format ("+strings.Join(outputFormats, ", ")+")")
	return cmd
}

func validFormat(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}
