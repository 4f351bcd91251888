package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bakhva/appraise/internal/cli"
)

func valuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values <field>",
		Short: "List the distinct codes of a categorical field",
		Long: `Values lists every distinct code a categorical field takes in the
dataset, with its display label when a label mapping is loaded.

Fields: Manufacturer, Model, Category, "Fuel Type", "Gearbox Type",
"Drive Wheels", Doors, Wheel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := resolveField(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q", args[0])
			}
			if !f.IsCategorical() {
				return fmt.Errorf("field %q has no categorical codes", f)
			}

			ds, err := openDataset(cmd.Context())
			if err != nil {
				return err
			}

			codes := ds.UniqueValues(f)
			if len(codes) == 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("no values recorded for %s", f)))
				return nil
			}

			fmt.Println(cli.FormatTitle(string(f)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tLABEL")
			for _, code := range codes {
				fmt.Fprintf(w, "%d\t%s\n", code, ds.Decode(f, code))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d values", len(codes))))
			return nil
		},
	}
}
