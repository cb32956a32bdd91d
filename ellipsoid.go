package gridref

import "math"

// Ellipsoid holds the defining parameters of a reference ellipsoid together
// with the eccentricity quantities derived from them. Values are computed
// once by NewEllipsoid and never mutated, so an Ellipsoid may be shared
// freely between goroutines.
type Ellipsoid struct {
	EquatorialRadius  float64 // semi-major axis a, in meters
	InverseFlattening float64 // 1/f
	PolarRadius       float64 // semi-minor axis b, in meters
	Eccentricity      float64 // first eccentricity e
	ESq               float64 // e² = 1 - (b/a)²
	EPrimeSq          float64 // second eccentricity squared, e²/(1-e²)
}

// NewEllipsoid derives the eccentricity constants used by the projection
// series from the equatorial radius and inverse flattening. The eccentricity
// radicand is clamped at zero so floating-point round-off on a near-spherical
// ellipsoid cannot produce a NaN.
func NewEllipsoid(equatorialRadius, inverseFlattening float64) Ellipsoid {
	a := equatorialRadius
	b := a * (1 - 1/inverseFlattening)
	esq := 1 - (b/a)*(b/a)
	e := math.Sqrt(math.Max(0, esq))
	return Ellipsoid{
		EquatorialRadius:  a,
		InverseFlattening: inverseFlattening,
		PolarRadius:       b,
		Eccentricity:      e,
		ESq:               esq,
		EPrimeSq:          e * e / (1 - e*e),
	}
}
