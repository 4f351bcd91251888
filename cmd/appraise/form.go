package main

import (
	"github.com/spf13/cobra"

	"github.com/bakhva/appraise/internal/match"
	"github.com/bakhva/appraise/internal/tui"
)

func formCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill an interactive form and estimate a price",
		Long: `Form opens a full-screen terminal form with every car attribute.
Categorical fields cycle through the values the dataset knows, numeric
fields take typed input, and enter submits the query.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := openDataset(cmd.Context())
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), tui.Config{
				Dataset:  ds,
				Matcher:  match.New(loadWeights()),
				Currency: displayCurrency(),
			})
		},
	}
}
