// Package dataset holds the immutable record table the matcher scans, along
// with the distinct-code lists and label mapping used to present it. A
// Dataset is built once at load and never modified afterwards.
package dataset

import (
	"strconv"

	"github.com/bakhva/appraise/internal/model"
)

// Summary is the precomputed dataset overview.
type Summary struct {
	Count         int
	Manufacturers int
	Models        int
	MinPrice      float64
	MaxPrice      float64
}

// Dataset is the in-memory record table. All accessors return internal state
// that callers must treat as read-only.
type Dataset struct {
	records []model.Record
	unique  map[model.Field][]int
	labels  *Labels
	summary Summary
}

// New builds a Dataset, taking ownership of records and unique. Fields
// missing from unique get their distinct codes derived from the records in
// first-appearance order. labels may be nil.
func New(records []model.Record, unique map[model.Field][]int, labels *Labels) *Dataset {
	u := make(map[model.Field][]int, len(model.CategoricalFields()))
	for _, f := range model.CategoricalFields() {
		if codes := unique[f]; len(codes) > 0 {
			u[f] = codes
			continue
		}
		u[f] = distinctCodes(records, f)
	}

	d := &Dataset{records: records, unique: u, labels: labels}
	d.summary = summarize(records, u)
	return d
}

// Records returns every row in source order.
func (d *Dataset) Records() []model.Record {
	return d.records
}

// UniqueValues returns the distinct codes observed for a categorical field,
// in source order. Non-categorical fields return nil.
func (d *Dataset) UniqueValues(f model.Field) []int {
	return d.unique[f]
}

// Summary returns the precomputed overview. An empty dataset reports zero
// counts and zero prices.
func (d *Dataset) Summary() Summary {
	return d.summary
}

// Decode translates a categorical code into its display label. Codes without
// a known label fall back to their decimal form, so rendering never fails.
func (d *Dataset) Decode(f model.Field, code int) string {
	if d.labels != nil {
		if label, ok := d.labels.Label(f, code); ok {
			return label
		}
	}
	return strconv.Itoa(code)
}

// Encode resolves a display label back to its code. It reports false when no
// label table is loaded or the label is unknown.
func (d *Dataset) Encode(f model.Field, label string) (int, bool) {
	if d.labels == nil {
		return 0, false
	}
	return d.labels.Code(f, label)
}

// Labels returns the label table, or nil when none was loaded.
func (d *Dataset) Labels() *Labels {
	return d.labels
}

func distinctCodes(records []model.Record, f model.Field) []int {
	seen := make(map[int]bool)
	var codes []int
	for i := range records {
		c := records[i].Code(f)
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}
	return codes
}

func summarize(records []model.Record, unique map[model.Field][]int) Summary {
	s := Summary{
		Count:         len(records),
		Manufacturers: len(unique[model.FieldManufacturer]),
		Models:        len(unique[model.FieldModel]),
	}
	for i := range records {
		p := records[i].PredictedPrice
		if i == 0 || p < s.MinPrice {
			s.MinPrice = p
		}
		if i == 0 || p > s.MaxPrice {
			s.MaxPrice = p
		}
	}
	return s
}
