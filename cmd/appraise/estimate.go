package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bakhva/appraise/internal/cli"
	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/match"
	"github.com/bakhva/appraise/internal/model"
	"github.com/bakhva/appraise/internal/validation"
)

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a car's price from its attributes",
		Long: `Estimate looks up the dataset record closest to the described car and
reports its precomputed price.

Manufacturer, model and production year are required. Categorical values
accept a display label (when a label mapping is loaded) or a raw code.

Examples:
  appraise estimate --manufacturer BMW --model 320i --year 2016
  appraise estimate --manufacturer 3 --model 52 --year 2014 --fuel Hybrid --mileage 120000`,
		RunE: runEstimate,
	}

	cmd.Flags().String("manufacturer", "", "manufacturer label or code (required)")
	cmd.Flags().String("model", "", "model label or code (required)")
	cmd.Flags().Int("year", 0, "production year (required)")
	cmd.Flags().String("category", "", "body category label or code")
	cmd.Flags().Bool("leather", false, "leather interior")
	cmd.Flags().String("fuel", "", "fuel type label or code")
	cmd.Flags().Float64("engine-volume", 0, "engine volume in litres")
	cmd.Flags().Float64("mileage", 0, "mileage")
	cmd.Flags().String("gearbox", "", "gearbox type label or code")
	cmd.Flags().String("drive-wheels", "", "drive wheels label or code")
	cmd.Flags().String("doors", "", "door bucket label or code")
	cmd.Flags().String("wheel", "", "steering wheel side label or code")
	cmd.Flags().Int("airbags", 0, "airbag count")
	cmd.Flags().Int("similar", 0, "also list the N next-closest records")
	cmd.Flags().Bool("json", false, "emit the result as JSON")

	return cmd
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ds, err := openDataset(ctx)
	if err != nil {
		return err
	}

	q, err := queryFromFlags(cmd, ds)
	if err != nil {
		return err
	}

	if err := q.Validate(); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fmt.Fprintln(os.Stderr, cli.FormatError(fe.Field+" "+fe.Message))
			}
			return errors.New("invalid query")
		}
		return err
	}

	matcher := match.New(loadWeights())
	res := matcher.Find(q, ds)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printResultJSON(cmd, res)
	}

	fmt.Println(cli.RenderResult(res, ds, displayCurrency()))

	if n, _ := cmd.Flags().GetInt("similar"); n > 0 && res.Record != nil {
		ranked := matcher.Rank(q, ds, n+1)
		if len(ranked) > 1 {
			fmt.Println(cli.RenderSimilar(ranked[1:], ds, displayCurrency()))
		}
	}

	return nil
}

// queryFromFlags builds the query, resolving categorical labels to codes.
// Flags left at their defaults leave the corresponding field unset.
func queryFromFlags(cmd *cobra.Command, ds *dataset.Dataset) (model.Query, error) {
	var q model.Query

	categoricals := []struct {
		flag  string
		field model.Field
	}{
		{"manufacturer", model.FieldManufacturer},
		{"model", model.FieldModel},
		{"category", model.FieldCategory},
		{"fuel", model.FieldFuelType},
		{"gearbox", model.FieldGearboxType},
		{"drive-wheels", model.FieldDriveWheels},
		{"doors", model.FieldDoors},
		{"wheel", model.FieldWheel},
	}
	for _, c := range categoricals {
		s, _ := cmd.Flags().GetString(c.flag)
		if s == "" {
			continue
		}
		code, err := parseFieldValue(ds, c.field, s)
		if err != nil {
			return q, err
		}
		q.SetCode(c.field, code)
	}

	q.ProductionYear, _ = cmd.Flags().GetInt("year")
	q.LeatherInterior, _ = cmd.Flags().GetBool("leather")
	q.EngineVolume, _ = cmd.Flags().GetFloat64("engine-volume")
	q.Mileage, _ = cmd.Flags().GetFloat64("mileage")
	q.Airbags, _ = cmd.Flags().GetInt("airbags")

	return q, nil
}

func printResultJSON(cmd *cobra.Command, res match.Result) error {
	out := struct {
		Record *model.Record `json:"record"`
		Price  *float64      `json:"price"`
		Score  float64       `json:"score"`
		Exact  bool          `json:"exact"`
	}{Record: res.Record, Score: res.Score, Exact: res.Exact}
	if res.Record != nil {
		out.Price = &res.Record.PredictedPrice
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
