// Package cmd provides the CLI commands for vacstats.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/JonMunkholm/vacancystats/internal/logging"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns a fresh tree
// so tests can run commands without sharing flag state.
func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "vacstats",
		Short: "Salary and vacancy statistics from job posting CSV exports",
		Long: `vacstats aggregates job postings into salary and vacancy statistics
by publication year and by region.

Salaries are converted to rubles, averaged per year and per region, and
regions with fewer than 1% of all postings are left out of the rankings.

Examples:
  vacstats stats vacancies.csv --title "Аналитик"
  vacstats stats vacancies.csv --title Go --format table
  vacstats currencies`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stderr so stdout stays clean for the report
			level := "error"
			if verbose {
				level = "debug"
			}
			logging.SetupWriter(cmd.ErrOrStderr(), level, "text")
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newStatsCmd())
	root.AddCommand(newCurrenciesCmd())
	return root
}

// Execute runs the CLI. Errors are printed to stderr before returning.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// printError shows the user message with its support code. Errors without a
// specific message (usage mistakes, for one) are shown as they are.
func printError(w io.Writer, err error) {
	if !core.IsUserFacing(err) {
		fmt.Fprintln(w, pterm.Red("Error: "+err.Error()))
		return
	}
	fmt.Fprintln(w, pterm.Red("Error: "+core.FormatUserError(err)))
	fmt.Fprintln(w, pterm.Gray(err.Error()))
}
