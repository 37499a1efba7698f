package cmd

import (
	"fmt"

	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List supported salary currencies and their ruble rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"Код", "Курс к рублю", "Валюта"}}
			for _, code := range core.Currencies() {
				rate, err := core.Rate(code)
				if err != nil {
					return err
				}
				data = append(data, []string{string(code), rate.String(), core.DisplayName(code)})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
			if err != nil {
				return fmt.Errorf("render currency table: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}
}
