package shipment

const (
	// DefaultPackageWeight is used when an order has no positive weight.
	DefaultPackageWeight = 1.0
	// DefaultPackageSide is used for every dimension an order leaves unset.
	DefaultPackageSide = 10.0
)

// Package describes the parcel sent to the aggregator. Weight is in kilograms and
// dimensions in centimetres.
type Package struct {
	Weight float64
	Height float64
	Width  float64
	Length float64
}

// NewPackage builds a Package from optional order measures. Each measure that is
// zero or negative is treated as absent and replaced by the default profile, so an
// order with weight 0 is quoted as a 1 kg parcel, never as a 0 kg one.
func NewPackage(weight, height, width, length float64) Package {
	return Package{
		Weight: orDefault(weight, DefaultPackageWeight),
		Height: orDefault(height, DefaultPackageSide),
		Width:  orDefault(width, DefaultPackageSide),
		Length: orDefault(length, DefaultPackageSide),
	}
}

// DefaultPackage returns the small-package profile: 1 kg, 10x10x10 cm.
func DefaultPackage() Package {
	return NewPackage(0, 0, 0, 0)
}

func orDefault(value, fallback float64) float64 {
	if value > 0 {
		return value
	}
	return fallback
}
