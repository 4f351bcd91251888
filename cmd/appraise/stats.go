package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bakhva/appraise/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset summary statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := openDataset(cmd.Context())
			if err != nil {
				return err
			}

			s := ds.Summary()
			if s.Count == 0 {
				fmt.Println(cli.FormatWarning("dataset is empty"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Dataset"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Records\t%d\n", s.Count)
			fmt.Fprintf(w, "Manufacturers\t%d\n", s.Manufacturers)
			fmt.Fprintf(w, "Models\t%d\n", s.Models)
			fmt.Fprintf(w, "Lowest price\t%s\n", cli.FormatPrice(s.MinPrice, displayCurrency()))
			fmt.Fprintf(w, "Highest price\t%s\n", cli.FormatPrice(s.MaxPrice, displayCurrency()))
			return w.Flush()
		},
	}
}
