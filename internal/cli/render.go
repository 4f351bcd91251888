package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/match"
	"github.com/bakhva/appraise/internal/model"
)

// FormatPrice renders a price with an optional currency suffix.
func FormatPrice(v float64, currency string) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatFieldValue renders one record field for display, decoding
// categorical codes through the dataset's label table.
func FormatFieldValue(ds *dataset.Dataset, f model.Field, r *model.Record) string {
	switch f {
	case model.FieldProductionYear:
		return strconv.Itoa(r.ProductionYear)
	case model.FieldLeatherInterior:
		if r.LeatherInterior {
			return "Yes"
		}
		return "No"
	case model.FieldEngineVolume:
		return strconv.FormatFloat(r.EngineVolume, 'f', -1, 64)
	case model.FieldMileage:
		return strconv.FormatFloat(r.Mileage, 'f', -1, 64)
	case model.FieldAirbags:
		return strconv.Itoa(r.Airbags)
	default:
		return ds.Decode(f, r.Code(f))
	}
}

// RecordLines renders every field of a record as "Name: value" lines in
// canonical order.
func RecordLines(ds *dataset.Dataset, r *model.Record) []string {
	fields := model.Fields()
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f, FormatFieldValue(ds, f, r)))
	}
	return lines
}

// RecordSummary is the one-line form of a record: year, manufacturer, model.
func RecordSummary(ds *dataset.Dataset, r *model.Record) string {
	return fmt.Sprintf("%d %s %s",
		r.ProductionYear,
		ds.Decode(model.FieldManufacturer, r.Manufacturer),
		ds.Decode(model.FieldModel, r.Model))
}

// RenderResult renders a lookup outcome as a boxed estimate. A nil record
// (empty dataset) renders as a warning instead.
func RenderResult(res match.Result, ds *dataset.Dataset, currency string) string {
	if res.Record == nil {
		return FormatWarning("no records to match against")
	}

	var b strings.Builder
	b.WriteString(PriceStyle.Render(FormatPrice(res.Record.PredictedPrice, currency)))
	b.WriteString("\n")
	if res.Exact {
		b.WriteString(SuccessStyle.Render(SuccessIcon + " Exact match"))
	} else {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%s Closest match (score %.2f)", ApproxIcon, res.Score)))
	}
	b.WriteString("\n\n")
	for _, line := range RecordLines(ds, res.Record) {
		b.WriteString(SubtleStyle.Render(line))
		b.WriteString("\n")
	}

	return RenderBox("Estimate", strings.TrimRight(b.String(), "\n"))
}

// RenderSimilar renders ranked alternates, one per line.
func RenderSimilar(results []match.Result, ds *dataset.Dataset, currency string) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.UnsetMargins().Render("Similar cars"))
	b.WriteString("\n")
	for i, res := range results {
		b.WriteString(fmt.Sprintf("%d. %s  %s %s\n",
			i+1,
			RecordSummary(ds, res.Record),
			BoldStyle.Render(FormatPrice(res.Record.PredictedPrice, currency)),
			SubtleStyle.Render(fmt.Sprintf("(score %.2f)", res.Score)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}
