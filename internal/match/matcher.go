// Package match finds the dataset record closest to a query. Lookup is a
// linear scan: an exact pass first, then a weighted-dissimilarity pass. Both
// passes are deterministic and never fail; an empty dataset yields a Result
// with a nil Record.
package match

import (
	"math"
	"sort"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/model"
)

// Engine volumes closer than this are considered equal during the exact pass.
const engineVolumeEpsilon = 0.001

// yearSpan normalizes production-year differences. A decade apart costs the
// full ProductionYear weight regardless of the query year.
const yearSpan = 10.0

// Result is the outcome of a lookup. Record is a copy of the winning dataset
// row, or nil when the dataset is empty. Exact reports whether the exact pass
// produced the winner; an approximate result can still score 0 when only
// unweighted fields differ.
type Result struct {
	Record *model.Record
	Score  float64
	Exact  bool
}

// Matcher scores queries against dataset records with a fixed weight set.
// It is stateless apart from the weights and safe for concurrent use.
type Matcher struct {
	weights Weights
}

// New returns a Matcher using the given weights.
func New(w Weights) *Matcher {
	return &Matcher{weights: w}
}

// Find returns the record matching q best. The exact pass returns the first
// record equal to the query on every compared field. Otherwise every record
// is scored and the lowest score wins; on ties the record encountered first
// is kept.
func (m *Matcher) Find(q model.Query, ds *dataset.Dataset) Result {
	records := ds.Records()

	for i := range records {
		if m.exact(&q, &records[i]) {
			rec := records[i]
			return Result{Record: &rec, Score: 0, Exact: true}
		}
	}

	best := -1
	bestScore := 0.0
	for i := range records {
		if s := m.score(&q, &records[i]); best == -1 || s < bestScore {
			best = i
			bestScore = s
		}
	}
	if best == -1 {
		return Result{}
	}

	rec := records[best]
	return Result{Record: &rec, Score: bestScore, Exact: false}
}

// Rank returns the n closest records in ascending score order. Records with
// equal scores keep their dataset order. n larger than the dataset is
// truncated; n <= 0 returns nil.
func (m *Matcher) Rank(q model.Query, ds *dataset.Dataset, n int) []Result {
	records := ds.Records()
	if n <= 0 || len(records) == 0 {
		return nil
	}

	results := make([]Result, 0, len(records))
	for i := range records {
		rec := records[i]
		results = append(results, Result{
			Record: &rec,
			Score:  m.score(&q, &records[i]),
			Exact:  m.exact(&q, &records[i]),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if n > len(results) {
		n = len(results)
	}
	return results[:n]
}

// exact reports field-for-field equality, with engine volume compared under
// epsilon. Every field participates here, including Doors and Wheel.
func (m *Matcher) exact(q *model.Query, r *model.Record) bool {
	return r.Manufacturer == q.Manufacturer &&
		r.Model == q.Model &&
		r.ProductionYear == q.ProductionYear &&
		r.Category == q.Category &&
		r.LeatherInterior == q.LeatherInterior &&
		r.FuelType == q.FuelType &&
		math.Abs(r.EngineVolume-q.EngineVolume) < engineVolumeEpsilon &&
		r.Mileage == q.Mileage &&
		r.GearboxType == q.GearboxType &&
		r.DriveWheels == q.DriveWheels &&
		r.Doors == q.Doors &&
		r.Wheel == q.Wheel &&
		r.Airbags == q.Airbags
}

// score sums the weighted dissimilarity between q and r. Lower is closer;
// zero means no weighted field differs.
func (m *Matcher) score(q *model.Query, r *model.Record) float64 {
	w := m.weights
	s := 0.0

	if r.Manufacturer != q.Manufacturer {
		s += w.Manufacturer
	}
	if r.Model != q.Model {
		s += w.Model
	}
	if r.Category != q.Category {
		s += w.Category
	}
	if r.FuelType != q.FuelType {
		s += w.FuelType
	}
	if r.GearboxType != q.GearboxType {
		s += w.GearboxType
	}
	if r.DriveWheels != q.DriveWheels {
		s += w.DriveWheels
	}
	if r.LeatherInterior != q.LeatherInterior {
		s += w.LeatherInterior
	}

	s += relative(r.EngineVolume, q.EngineVolume) * w.EngineVolume
	s += relative(r.Mileage, q.Mileage) * w.Mileage
	s += relative(float64(r.Airbags), float64(q.Airbags)) * w.Airbags
	s += math.Abs(float64(r.ProductionYear-q.ProductionYear)) / yearSpan * w.ProductionYear

	return s
}

// relative is |record-query| normalized by the query value. A zero query
// value divides by 1 instead, so unspecified numeric fields contribute the
// raw difference rather than blowing up.
func relative(recorded, queried float64) float64 {
	denom := queried
	if denom == 0 {
		denom = 1
	}
	return math.Abs(recorded-queried) / denom
}
