package model

// Record is a single dataset row: the coded description of a listed vehicle
// plus the price precomputed for it upstream. Records are immutable once the
// dataset is built.
//
// Categorical attributes hold integer codes assigned by the upstream label
// encoding; decoding back to display labels is a presentation concern and
// never happens during matching.
type Record struct {
	Manufacturer    int     `json:"Manufacturer"`
	Model           int     `json:"Model"`
	ProductionYear  int     `json:"Production Year"`
	Category        int     `json:"Category"`
	LeatherInterior bool    `json:"Leather Interior"`
	FuelType        int     `json:"Fuel Type"`
	EngineVolume    float64 `json:"Engine Volume"`
	Mileage         float64 `json:"Mileage"`
	GearboxType     int     `json:"Gearbox Type"`
	DriveWheels     int     `json:"Drive Wheels"`
	Doors           int     `json:"Doors"`
	Wheel           int     `json:"Wheel"`
	Airbags         int     `json:"Airbags"`
	PredictedPrice  float64 `json:"predicted_price"`
}

// Code returns the integer code stored for a categorical field. It returns
// zero for non-categorical fields; callers cycle through CategoricalFields.
func (r *Record) Code(f Field) int {
	switch f {
	case FieldManufacturer:
		return r.Manufacturer
	case FieldModel:
		return r.Model
	case FieldCategory:
		return r.Category
	case FieldFuelType:
		return r.FuelType
	case FieldGearboxType:
		return r.GearboxType
	case FieldDriveWheels:
		return r.DriveWheels
	case FieldDoors:
		return r.Doors
	case FieldWheel:
		return r.Wheel
	default:
		return 0
	}
}
