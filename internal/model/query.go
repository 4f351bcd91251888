package model

import "github.com/bakhva/appraise/internal/validation"

// Query describes the vehicle a user wants a price for. It mirrors Record
// minus the price. Manufacturer, Model and ProductionYear must be set;
// every other attribute defaults to its zero value when unspecified.
type Query struct {
	Manufacturer    int     `json:"Manufacturer"      validate:"required"`
	Model           int     `json:"Model"             validate:"required"`
	ProductionYear  int     `json:"Production Year"   validate:"required"`
	Category        int     `json:"Category"          validate:"gte=0"`
	LeatherInterior bool    `json:"Leather Interior"`
	FuelType        int     `json:"Fuel Type"         validate:"gte=0"`
	EngineVolume    float64 `json:"Engine Volume"     validate:"gte=0"`
	Mileage         float64 `json:"Mileage"           validate:"gte=0"`
	GearboxType     int     `json:"Gearbox Type"      validate:"gte=0"`
	DriveWheels     int     `json:"Drive Wheels"      validate:"gte=0"`
	Doors           int     `json:"Doors"             validate:"gte=0"`
	Wheel           int     `json:"Wheel"             validate:"gte=0"`
	Airbags         int     `json:"Airbags"           validate:"gte=0"`
}

// Validate checks the mandatory-field and range rules. Matching itself never
// validates; callers must reject a bad query before asking for a price.
func (q *Query) Validate() error {
	return validation.Struct(q)
}

// QueryFromRecord copies a record's descriptor into a query, dropping the
// price. Useful for "more like this" lookups and for tests.
func QueryFromRecord(r Record) Query {
	return Query{
		Manufacturer:    r.Manufacturer,
		Model:           r.Model,
		ProductionYear:  r.ProductionYear,
		Category:        r.Category,
		LeatherInterior: r.LeatherInterior,
		FuelType:        r.FuelType,
		EngineVolume:    r.EngineVolume,
		Mileage:         r.Mileage,
		GearboxType:     r.GearboxType,
		DriveWheels:     r.DriveWheels,
		Doors:           r.Doors,
		Wheel:           r.Wheel,
		Airbags:         r.Airbags,
	}
}

// Code returns the integer code held for a categorical field.
func (q *Query) Code(f Field) int {
	switch f {
	case FieldManufacturer:
		return q.Manufacturer
	case FieldModel:
		return q.Model
	case FieldCategory:
		return q.Category
	case FieldFuelType:
		return q.FuelType
	case FieldGearboxType:
		return q.GearboxType
	case FieldDriveWheels:
		return q.DriveWheels
	case FieldDoors:
		return q.Doors
	case FieldWheel:
		return q.Wheel
	default:
		return 0
	}
}

// SetCode stores an integer code for a categorical field. Non-categorical
// fields are ignored.
func (q *Query) SetCode(f Field, code int) {
	switch f {
	case FieldManufacturer:
		q.Manufacturer = code
	case FieldModel:
		q.Model = code
	case FieldCategory:
		q.Category = code
	case FieldFuelType:
		q.FuelType = code
	case FieldGearboxType:
		q.GearboxType = code
	case FieldDriveWheels:
		q.DriveWheels = code
	case FieldDoors:
		q.Doors = code
	case FieldWheel:
		q.Wheel = code
	}
}
