package match

// Weights holds the per-field contribution of a mismatch to the
// dissimilarity score. Categorical fields add a flat penalty when codes
// differ; numeric fields add a normalized difference scaled by their weight.
//
// The defaults are hand-tuned: identity fields (Manufacturer, Model) dominate,
// body and fuel matter, comfort details barely register. Doors and Wheel have
// no entry on purpose — they participate in exact matching only.
type Weights struct {
	Manufacturer    float64
	Model           float64
	Category        float64
	FuelType        float64
	GearboxType     float64
	DriveWheels     float64
	LeatherInterior float64
	EngineVolume    float64
	Mileage         float64
	Airbags         float64
	ProductionYear  float64
}

// DefaultWeights returns the tuned weight set.
func DefaultWeights() Weights {
	return Weights{
		Manufacturer:    5,
		Model:           5,
		Category:        3,
		FuelType:        3,
		GearboxType:     2,
		DriveWheels:     2,
		LeatherInterior: 1,
		EngineVolume:    2,
		Mileage:         1,
		Airbags:         1,
		ProductionYear:  3,
	}
}
