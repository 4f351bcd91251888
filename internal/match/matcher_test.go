package match

import (
	"math"
	"testing"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/model"
	"github.com/bakhva/appraise/internal/testutil"
)

const scoreTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < scoreTolerance
}

func TestFindExactMatch(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())

	records := ds.Records()
	for i := range records {
		q := model.QueryFromRecord(records[i])
		res := m.Find(q, ds)

		if res.Record == nil {
			t.Fatalf("record %d: Find returned no record", i)
		}
		if !res.Exact {
			t.Errorf("record %d: expected exact match", i)
		}
		if res.Score != 0 {
			t.Errorf("record %d: exact match score = %v, want 0", i, res.Score)
		}
	}
}

func TestFindExactMatchReturnsFirstDuplicate(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())

	// The last fleet record duplicates the first except for its price. An
	// exact query for it must resolve to the earlier row.
	records := ds.Records()
	q := model.QueryFromRecord(records[len(records)-1])

	res := m.Find(q, ds)
	if res.Record == nil || !res.Exact {
		t.Fatalf("expected an exact match, got %+v", res)
	}
	if res.Record.PredictedPrice != 13500 {
		t.Errorf("matched price = %v, want 13500 (first occurrence)", res.Record.PredictedPrice)
	}
}

func TestFindApproximate(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())
	records := ds.Records()

	tests := []struct {
		name      string
		base      int
		mutate    func(*model.Query)
		wantPrice float64
		wantScore float64
	}{
		{
			name: "production year one off",
			base: 2,
			mutate: func(q *model.Query) {
				q.ProductionYear = 2016
			},
			wantPrice: 11000,
			wantScore: 0.3,
		},
		{
			name: "doors differ but carry no weight",
			base: 0,
			mutate: func(q *model.Query) {
				q.Doors = 0
			},
			wantPrice: 13500,
			wantScore: 0,
		},
		{
			name: "wheel side differs but carries no weight",
			base: 3,
			mutate: func(q *model.Query) {
				q.Wheel = 1
			},
			wantPrice: 7500,
			wantScore: 0,
		},
		{
			name: "gearbox leather and two years",
			base: 2,
			mutate: func(q *model.Query) {
				q.GearboxType = 2
				q.LeatherInterior = true
				q.ProductionYear = 2013
			},
			wantPrice: 11000,
			wantScore: 3.6,
		},
		{
			name: "mileage halfway off",
			base: 4,
			mutate: func(q *model.Query) {
				q.Mileage = 20000
			},
			wantPrice: 16000,
			// |30000-20000| / 20000 * 1
			wantScore: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := model.QueryFromRecord(records[tt.base])
			tt.mutate(&q)

			res := m.Find(q, ds)
			if res.Record == nil {
				t.Fatal("Find returned no record")
			}
			if res.Exact {
				t.Error("expected an approximate match")
			}
			if res.Record.PredictedPrice != tt.wantPrice {
				t.Errorf("matched price = %v, want %v", res.Record.PredictedPrice, tt.wantPrice)
			}
			if !almostEqual(res.Score, tt.wantScore) {
				t.Errorf("score = %v, want %v", res.Score, tt.wantScore)
			}
		})
	}
}

func TestFindManufacturerMismatchPenalty(t *testing.T) {
	rec := model.Record{
		Manufacturer: 1, Model: 10, ProductionYear: 2016, Category: 1,
		FuelType: 1, EngineVolume: 2.0, Mileage: 90000, GearboxType: 1,
		DriveWheels: 1, Doors: 1, Wheel: 1, Airbags: 8, PredictedPrice: 9000,
	}
	ds := dataset.New([]model.Record{rec}, nil, nil)
	m := New(DefaultWeights())

	q := model.QueryFromRecord(rec)
	q.Manufacturer = 2

	res := m.Find(q, ds)
	if res.Exact {
		t.Fatal("expected an approximate match")
	}
	if res.Score < 5 {
		t.Errorf("manufacturer mismatch score = %v, want >= 5", res.Score)
	}
	if !almostEqual(res.Score, 5) {
		t.Errorf("score = %v, want exactly the manufacturer penalty", res.Score)
	}
}

func TestFindEmptyDataset(t *testing.T) {
	ds := dataset.New(nil, nil, nil)
	m := New(DefaultWeights())

	q := model.Query{Manufacturer: 1, Model: 10, ProductionYear: 2016}
	res := m.Find(q, ds)

	if res.Record != nil {
		t.Errorf("expected nil record for empty dataset, got %+v", res.Record)
	}
	if res.Exact || res.Score != 0 {
		t.Errorf("empty dataset result = %+v, want zero value", res)
	}
}

func TestFindZeroNumericQueryValues(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())

	q := model.Query{Manufacturer: 1, Model: 10, ProductionYear: 2016}

	res := m.Find(q, ds)
	if res.Record == nil {
		t.Fatal("Find returned no record")
	}
	if math.IsNaN(res.Score) || math.IsInf(res.Score, 0) {
		t.Errorf("score with zero numeric fields = %v, want finite", res.Score)
	}
}

func TestFindDeterministic(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())

	q := model.Query{
		Manufacturer: 2, Model: 20, ProductionYear: 2014,
		Category: 1, FuelType: 2, EngineVolume: 2.5, Mileage: 100000,
		GearboxType: 1, DriveWheels: 1, Doors: 1, Wheel: 1, Airbags: 9,
	}

	first := m.Find(q, ds)
	second := m.Find(q, ds)

	if first.Record == nil || second.Record == nil {
		t.Fatal("Find returned no record")
	}
	if *first.Record != *second.Record || first.Score != second.Score || first.Exact != second.Exact {
		t.Errorf("repeated lookups disagree: %+v vs %+v", first, second)
	}
}

func TestFindEngineVolumeEpsilon(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())
	records := ds.Records()

	tests := []struct {
		name      string
		volume    float64
		wantExact bool
	}{
		{"difference below epsilon", 2.0005, true},
		{"difference above epsilon", 2.002, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := model.QueryFromRecord(records[0])
			q.EngineVolume = tt.volume

			res := m.Find(q, ds)
			if res.Record == nil {
				t.Fatal("Find returned no record")
			}
			if res.Exact != tt.wantExact {
				t.Errorf("exact = %v, want %v", res.Exact, tt.wantExact)
			}
			if res.Record.PredictedPrice != 13500 {
				t.Errorf("matched price = %v, want 13500", res.Record.PredictedPrice)
			}
		})
	}
}

func TestFindTieBreakKeepsFirst(t *testing.T) {
	a := model.Record{
		Manufacturer: 1, Model: 10, ProductionYear: 2015, Category: 1,
		FuelType: 1, EngineVolume: 2.0, Mileage: 50000, GearboxType: 1,
		DriveWheels: 1, Doors: 1, Wheel: 1, Airbags: 6, PredictedPrice: 8000,
	}
	b := a
	b.PredictedPrice = 9500

	ds := dataset.New([]model.Record{a, b}, nil, nil)
	m := New(DefaultWeights())

	// One year off both records: identical scores, first row must win.
	q := model.QueryFromRecord(a)
	q.ProductionYear = 2016

	res := m.Find(q, ds)
	if res.Record == nil || res.Exact {
		t.Fatalf("expected an approximate match, got %+v", res)
	}
	if res.Record.PredictedPrice != 8000 {
		t.Errorf("matched price = %v, want 8000 (first encountered)", res.Record.PredictedPrice)
	}
}

func TestRank(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())
	records := ds.Records()

	q := model.QueryFromRecord(records[0])

	results := m.Rank(q, ds, 3)
	if len(results) != 3 {
		t.Fatalf("Rank returned %d results, want 3", len(results))
	}

	// Both duplicate rows score zero; stability keeps dataset order.
	if results[0].Record.PredictedPrice != 13500 {
		t.Errorf("first price = %v, want 13500", results[0].Record.PredictedPrice)
	}
	if results[1].Record.PredictedPrice != 13900 {
		t.Errorf("second price = %v, want 13900", results[1].Record.PredictedPrice)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score < results[i-1].Score {
			t.Errorf("scores not ascending: %v before %v", results[i-1].Score, results[i].Score)
		}
	}
}

func TestRankBounds(t *testing.T) {
	ds := testutil.FleetDataset(t)
	m := New(DefaultWeights())
	q := model.QueryFromRecord(ds.Records()[0])

	if got := m.Rank(q, ds, 0); got != nil {
		t.Errorf("Rank with n=0 = %v, want nil", got)
	}
	if got := m.Rank(q, ds, 100); len(got) != len(ds.Records()) {
		t.Errorf("Rank with oversized n returned %d results, want %d", len(got), len(ds.Records()))
	}
	if got := m.Rank(q, dataset.New(nil, nil, nil), 5); got != nil {
		t.Errorf("Rank on empty dataset = %v, want nil", got)
	}
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name     string
		recorded float64
		queried  float64
		want     float64
	}{
		{"equal values", 3, 3, 0},
		{"zero query divides by one", 5, 0, 5},
		{"fractional query keeps its own denominator", 2, 0.5, 3},
		{"plain relative difference", 120000, 100000, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relative(tt.recorded, tt.queried); !almostEqual(got, tt.want) {
				t.Errorf("relative(%v, %v) = %v, want %v", tt.recorded, tt.queried, got, tt.want)
			}
		})
	}
}
