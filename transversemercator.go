package gridref

import "math"

// scaleFactor is the UTM central meridian scale factor k0.
const scaleFactor = 0.9996

// transverseMercator evaluates the forward and inverse Transverse Mercator
// projection series for one ellipsoid. Longitudes are handled as offsets
// from the zone's central meridian; the false easting and false northing
// offsets belong to the UTM layer, not the projection.
type transverseMercator struct {
	ellipsoid Ellipsoid
}

// meridionalArc returns the meridional arc length M from the equator to the
// given latitude (radians) via the fourth-order series in e².
func (t transverseMercator) meridionalArc(latitude float64) float64 {
	esq := t.ellipsoid.ESq
	esq2 := esq * esq
	esq3 := esq2 * esq
	return t.ellipsoid.EquatorialRadius *
		((1-esq/4-3*esq2/64-5*esq3/256)*latitude -
			(3*esq/8+3*esq2/32+45*esq3/1024)*math.Sin(2*latitude) +
			(15*esq2/256+45*esq3/1024)*math.Sin(4*latitude) -
			(35*esq3/3072)*math.Sin(6*latitude))
}

// forward projects a latitude (radians) and longitude offset from the
// central meridian (radians) to easting and northing in meters. The easting
// includes the 500,000 m central meridian offset; the northing is signed and
// negative south of the equator.
func (t transverseMercator) forward(latitude, deltaLong float64) (easting, northing float64) {
	e := t.ellipsoid
	sinPhi := math.Sin(latitude)
	cosPhi := math.Cos(latitude)
	tanPhi := math.Tan(latitude)

	n := e.EquatorialRadius / math.Sqrt(1-e.ESq*sinPhi*sinPhi)
	tt := tanPhi * tanPhi
	c := e.EPrimeSq * cosPhi * cosPhi
	a1 := deltaLong * cosPhi

	a2 := a1 * a1
	a3 := a2 * a1
	a4 := a3 * a1
	a5 := a4 * a1
	a6 := a5 * a1

	m := t.meridionalArc(latitude)

	easting = falseEasting + scaleFactor*n*
		(a1+(1-tt+c)*a3/6+(5-18*tt+tt*tt+72*c-58*e.EPrimeSq)*a5/120)
	northing = scaleFactor * (m + n*tanPhi*
		(a2/2+(5-tt+9*c+4*c*c)*a4/24+(61-58*tt+tt*tt+600*c-330*e.EPrimeSq)*a6/720))
	return easting, northing
}

// inverse recovers the latitude (radians) and the longitude offset from the
// central meridian (radians) for an easting and a signed northing. Southern
// hemisphere callers remove the false northing first so the meridional arc
// carries its sign through the footprint latitude.
func (t transverseMercator) inverse(easting, northing float64) (latitude, deltaLong float64) {
	e := t.ellipsoid
	esq := e.ESq
	esq2 := esq * esq
	esq3 := esq2 * esq

	m := northing / scaleFactor
	mu := m / (e.EquatorialRadius * (1 - esq/4 - 3*esq2/64 - 5*esq3/256))

	// Footprint latitude from the e1 correction series.
	root := math.Sqrt(1 - esq)
	e1 := (1 - root) / (1 + root)
	e1sq := e1 * e1
	phi1 := mu +
		(3*e1/2-27*e1sq*e1/32)*math.Sin(2*mu) +
		(21*e1sq/16-55*e1sq*e1sq/32)*math.Sin(4*mu) +
		(151*e1sq*e1/96)*math.Sin(6*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	n1 := e.EquatorialRadius / math.Sqrt(1-esq*sinPhi1*sinPhi1)
	r1 := e.EquatorialRadius * (1 - esq) / math.Pow(1-esq*sinPhi1*sinPhi1, 1.5)
	t1 := tanPhi1 * tanPhi1
	c1 := e.EPrimeSq * cosPhi1 * cosPhi1

	d := (easting - falseEasting) / (n1 * scaleFactor)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	latitude = phi1 - (n1*tanPhi1/r1)*
		(d2/2-
			(5+3*t1+10*c1-4*c1*c1-9*e.EPrimeSq)*d4/24+
			(61+90*t1+298*c1+45*t1*t1-252*e.EPrimeSq-3*c1*c1)*d6/720)
	deltaLong = (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*e.EPrimeSq+24*t1*t1)*d5/120) / cosPhi1
	return latitude, deltaLong
}
