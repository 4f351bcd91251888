package model

// Field identifies a vehicle attribute by the display-style key used in the
// dataset document. Keys are matched verbatim, including spaces.
type Field string

const (
	// FieldManufacturer is the coded make of the vehicle.
	FieldManufacturer Field = "Manufacturer"
	// FieldModel is the coded model within a manufacturer.
	FieldModel Field = "Model"
	// FieldProductionYear is the four-digit production year.
	FieldProductionYear Field = "Production Year"
	// FieldCategory is the coded body category (sedan, jeep, ...).
	FieldCategory Field = "Category"
	// FieldLeatherInterior is the leather-interior flag.
	FieldLeatherInterior Field = "Leather Interior"
	// FieldFuelType is the coded fuel type.
	FieldFuelType Field = "Fuel Type"
	// FieldEngineVolume is the engine displacement in litres.
	FieldEngineVolume Field = "Engine Volume"
	// FieldMileage is the odometer reading.
	FieldMileage Field = "Mileage"
	// FieldGearboxType is the coded gearbox type.
	FieldGearboxType Field = "Gearbox Type"
	// FieldDriveWheels is the coded drive layout.
	FieldDriveWheels Field = "Drive Wheels"
	// FieldDoors is the coded door-count bucket.
	FieldDoors Field = "Doors"
	// FieldWheel is the coded steering-wheel side.
	FieldWheel Field = "Wheel"
	// FieldAirbags is the airbag count.
	FieldAirbags Field = "Airbags"
)

// PriceKey is the document key carrying the precomputed price for a record.
const PriceKey = "predicted_price"

// Fields returns every query field in canonical display order.
func Fields() []Field {
	return []Field{
		FieldManufacturer,
		FieldModel,
		FieldProductionYear,
		FieldCategory,
		FieldLeatherInterior,
		FieldFuelType,
		FieldEngineVolume,
		FieldMileage,
		FieldGearboxType,
		FieldDriveWheels,
		FieldDoors,
		FieldWheel,
		FieldAirbags,
	}
}

// CategoricalFields returns the integer-coded fields in canonical display
// order. Leather Interior is a boolean flag, not a coded field, and is
// deliberately absent.
func CategoricalFields() []Field {
	return []Field{
		FieldManufacturer,
		FieldModel,
		FieldCategory,
		FieldFuelType,
		FieldGearboxType,
		FieldDriveWheels,
		FieldDoors,
		FieldWheel,
	}
}

// IsCategorical reports whether f carries an integer code.
func (f Field) IsCategorical() bool {
	switch f {
	case FieldManufacturer, FieldModel, FieldCategory, FieldFuelType,
		FieldGearboxType, FieldDriveWheels, FieldDoors, FieldWheel:
		return true
	default:
		return false
	}
}
