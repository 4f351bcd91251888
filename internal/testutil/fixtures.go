// Package testutil provides shared fixtures for package tests: a small
// labeled fleet with known prices and helpers that wire it into a dataset or
// a snapshot database.
package testutil

import (
	"context"
	"testing"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/model"
	"github.com/bakhva/appraise/internal/storage"
)

// FleetRecords returns the fixture fleet. The last record duplicates the
// first in everything but price, which pins first-encountered tie-breaking
// in matcher tests. Callers must not mutate the result.
func FleetRecords() []model.Record {
	return []model.Record{
		{
			Manufacturer: 1, Model: 10, ProductionYear: 2016, Category: 1,
			LeatherInterior: true, FuelType: 1, EngineVolume: 2.0,
			Mileage: 90000, GearboxType: 1, DriveWheels: 2, Doors: 1,
			Wheel: 1, Airbags: 8, PredictedPrice: 13500,
		},
		{
			Manufacturer: 1, Model: 11, ProductionYear: 2018, Category: 2,
			LeatherInterior: true, FuelType: 3, EngineVolume: 3.0,
			Mileage: 60000, GearboxType: 3, DriveWheels: 3, Doors: 1,
			Wheel: 1, Airbags: 10, PredictedPrice: 28000,
		},
		{
			Manufacturer: 2, Model: 20, ProductionYear: 2015, Category: 1,
			LeatherInterior: false, FuelType: 2, EngineVolume: 2.5,
			Mileage: 120000, GearboxType: 1, DriveWheels: 1, Doors: 1,
			Wheel: 1, Airbags: 9, PredictedPrice: 11000,
		},
		{
			Manufacturer: 2, Model: 21, ProductionYear: 2012, Category: 3,
			LeatherInterior: false, FuelType: 2, EngineVolume: 1.8,
			Mileage: 160000, GearboxType: 1, DriveWheels: 1, Doors: 1,
			Wheel: 2, Airbags: 7, PredictedPrice: 7500,
		},
		{
			Manufacturer: 3, Model: 30, ProductionYear: 2019, Category: 1,
			LeatherInterior: true, FuelType: 1, EngineVolume: 2.4,
			Mileage: 30000, GearboxType: 1, DriveWheels: 1, Doors: 1,
			Wheel: 1, Airbags: 6, PredictedPrice: 16000,
		},
		{
			Manufacturer: 1, Model: 10, ProductionYear: 2016, Category: 1,
			LeatherInterior: true, FuelType: 1, EngineVolume: 2.0,
			Mileage: 90000, GearboxType: 1, DriveWheels: 2, Doors: 1,
			Wheel: 1, Airbags: 8, PredictedPrice: 13900,
		},
	}
}

// FleetLabels returns the label table covering every code in FleetRecords.
func FleetLabels() *dataset.Labels {
	return dataset.NewLabels(map[model.Field]map[string]int{
		model.FieldManufacturer: {"BMW": 1, "Toyota": 2, "Hyundai": 3},
		model.FieldModel: {
			"320i": 10, "X5": 11, "Camry": 20, "Prius": 21, "Sonata": 30,
		},
		model.FieldCategory:    {"Sedan": 1, "Jeep": 2, "Hatchback": 3},
		model.FieldFuelType:    {"Petrol": 1, "Hybrid": 2, "Diesel": 3},
		model.FieldGearboxType: {"Automatic": 1, "Manual": 2, "Tiptronic": 3},
		model.FieldDriveWheels: {"Front": 1, "Rear": 2, "4x4": 3},
		model.FieldDoors:       {"2-3": 0, "4-5": 1, ">5": 2},
		model.FieldWheel:       {"Left": 1, "Right": 2},
	})
}

// FleetDataset builds a dataset over the fixture fleet with labels attached.
func FleetDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	return dataset.New(FleetRecords(), nil, FleetLabels())
}

// SetupTestStore creates an in-memory snapshot database with migrations
// applied. Cleanup is registered automatically.
func SetupTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
