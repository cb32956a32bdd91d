package gridref

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Hemisphere represents the hemisphere, north or south.
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

const falseEasting = 500000.0
const falseNorthing = 10000000.0

// gridLetters is the 24-letter MGRS alphabet, A through Z without I and O.
// Latitude band letters and 100 km column letters index into it.
const gridLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// bandLetters are the valid UTM latitude band letters, C through X.
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

// southernBands are the band letters that place a reference south of the
// equator.
const southernBands = "ACDEFGHJKLM"

// UTMCoord is a UTM grid coordinate: longitude zone, latitude band letter,
// and projected easting/northing in meters. Southern hemisphere northings
// carry the 10,000,000 m false northing so they stay non-negative.
type UTMCoord struct {
	Zone       int
	Band       byte
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

// String formats the coordinate in the canonical three-token UTM form, with
// easting and northing rounded to the nearest meter.
func (c UTMCoord) String() string {
	return fmt.Sprintf("%d%c %.0f %.0f", c.Zone, c.Band,
		math.Round(c.Easting), math.Round(c.Northing))
}

// UTM converts between geodetic coordinates and the UTM grid.
type UTM struct {
	tm transverseMercator
}

// NewUTM constructs a UTM converter for the WGS84 ellipsoid.
func NewUTM() *UTM {
	return NewUTMForEllipsoid(WGS84)
}

// NewUTMForEllipsoid constructs a UTM converter for the given ellipsoid.
func NewUTMForEllipsoid(e Ellipsoid) *UTM {
	return &UTM{tm: transverseMercator{ellipsoid: e}}
}

// zoneNumber returns the UTM longitude zone for a longitude in degrees.
// The caller normalizes +180 to -180 first.
func zoneNumber(longitude float64) int {
	return 1 + int(math.Floor((longitude+180)/6))
}

// centralMeridian returns the central meridian of a zone in degrees.
func centralMeridian(zone int) float64 {
	return float64(3 + 6*(zone-1) - 180)
}

// latitudeBandIndex returns the index of the latitude band letter in
// gridLetters for a latitude in degrees. Band X spans twelve degrees, 72 to
// 84; latitudes at or above 84 north or below 80 south have no UTM band.
func latitudeBandIndex(latitude float64) (int, error) {
	switch {
	case latitude >= -80 && latitude < 72:
		return int(math.Floor((latitude+80)/8)) + 2, nil
	case latitude >= 72 && latitude < 84:
		return 21, nil
	default:
		return 0, fmt.Errorf("%w: latitude %.6f", ErrUnsupportedPolarRegion, latitude)
	}
}

// validateGeodetic checks a geodetic coordinate against the valid latitude
// and longitude ranges and returns it in degrees, with +180 longitude
// normalized to the -180 side of the antimeridian.
func validateGeodetic(geo s2.LatLng) (latitude, longitude float64, err error) {
	latitude = geo.Lat.Degrees()
	longitude = geo.Lng.Degrees()
	if latitude < -90 || latitude > 90 || math.IsNaN(latitude) {
		return 0, 0, fmt.Errorf("%w: %.6f", ErrInvalidLatitude, latitude)
	}
	if longitude < -180 || longitude > 180 || math.IsNaN(longitude) {
		return 0, 0, fmt.Errorf("%w: %.6f", ErrInvalidLongitude, longitude)
	}
	if longitude == 180 {
		longitude = -180
	}
	return latitude, longitude, nil
}

// ProjectFromGeodetic projects a geodetic coordinate onto the UTM grid,
// computing the zone, latitude band, and projected easting/northing.
func (u *UTM) ProjectFromGeodetic(geo s2.LatLng) (UTMCoord, error) {
	latitude, longitude, err := validateGeodetic(geo)
	if err != nil {
		return UTMCoord{}, err
	}
	bandIndex, err := latitudeBandIndex(latitude)
	if err != nil {
		return UTMCoord{}, err
	}
	zone := zoneNumber(longitude)

	phi := latitude * math.Pi / 180
	deltaLong := (longitude - centralMeridian(zone)) * math.Pi / 180
	easting, northing := u.tm.forward(phi, deltaLong)

	hemisphere := HemisphereNorth
	if northing < 0 {
		northing += falseNorthing
		hemisphere = HemisphereSouth
	}
	return UTMCoord{
		Zone:       zone,
		Band:       gridLetters[bandIndex],
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	}, nil
}

// ProjectToGeodetic recovers the geodetic coordinate for a UTM grid
// coordinate via the inverse projection series.
func (u *UTM) ProjectToGeodetic(c UTMCoord) (s2.LatLng, error) {
	if c.Zone < 1 || c.Zone > 60 {
		return s2.LatLng{}, fmt.Errorf("%w: zone %d out of range", ErrInvalidUTMFormat, c.Zone)
	}
	if c.Hemisphere != HemisphereNorth && c.Hemisphere != HemisphereSouth {
		return s2.LatLng{}, fmt.Errorf("%w: hemisphere not set", ErrInvalidUTMFormat)
	}
	if c.Easting < 0 {
		return s2.LatLng{}, fmt.Errorf("%w: easting %.1f out of range", ErrInvalidUTMFormat, c.Easting)
	}
	if c.Northing < 0 || c.Northing > falseNorthing {
		return s2.LatLng{}, fmt.Errorf("%w: northing %.1f out of range", ErrInvalidUTMFormat, c.Northing)
	}

	northing := c.Northing
	if c.Hemisphere == HemisphereSouth {
		northing -= falseNorthing
	}
	phi, deltaLong := u.tm.inverse(c.Easting, northing)

	latitude := phi * 180 / math.Pi
	longitude := centralMeridian(c.Zone) + deltaLong*180/math.Pi
	return s2.LatLngFromDegrees(latitude, longitude), nil
}

// ConvertFromGeodetic converts a geodetic coordinate to a UTM reference
// string such as "33U 391776 5820073". Invalid or polar input returns an
// error; there is no fallback reference.
func (u *UTM) ConvertFromGeodetic(geo s2.LatLng) (string, error) {
	coord, err := u.ProjectFromGeodetic(geo)
	if err != nil {
		return "", err
	}
	return coord.String(), nil
}

// ConvertToGeodetic converts a UTM reference string back to a geodetic
// coordinate. Both the "33U 391776 5820073" and "33 U 391776 5820073" forms
// are accepted.
func (u *UTM) ConvertToGeodetic(utm string) (s2.LatLng, error) {
	coord, err := ParseUTM(utm)
	if err != nil {
		return s2.LatLng{}, err
	}
	return u.ProjectToGeodetic(coord)
}

// ParseUTM parses a UTM reference string into its grid coordinate. The zone
// and band may be one token or two; easting and northing are whole-meter
// digit strings. The hemisphere is derived from the band letter.
func ParseUTM(utm string) (UTMCoord, error) {
	tokens := strings.Fields(strings.ToUpper(utm))

	var zoneBand, eastToken, northToken string
	switch len(tokens) {
	case 3:
		zoneBand, eastToken, northToken = tokens[0], tokens[1], tokens[2]
	case 4:
		zoneBand = tokens[0] + tokens[1]
		eastToken, northToken = tokens[2], tokens[3]
	default:
		return UTMCoord{}, fmt.Errorf("%w: expected 3 or 4 fields, got %d", ErrInvalidUTMFormat, len(tokens))
	}

	zone, band, err := splitZoneBand(zoneBand)
	if err != nil {
		return UTMCoord{}, err
	}
	easting, err := parseMeters(eastToken)
	if err != nil {
		return UTMCoord{}, fmt.Errorf("%w: easting %q", ErrInvalidUTMFormat, eastToken)
	}
	northing, err := parseMeters(northToken)
	if err != nil {
		return UTMCoord{}, fmt.Errorf("%w: northing %q", ErrInvalidUTMFormat, northToken)
	}

	hemisphere := HemisphereNorth
	if strings.IndexByte(southernBands, band) >= 0 {
		hemisphere = HemisphereSouth
	}
	return UTMCoord{
		Zone:       zone,
		Band:       band,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	}, nil
}

// splitZoneBand classifies a grid zone designator token: one or two zone
// digits followed by a single latitude band letter.
func splitZoneBand(token string) (int, byte, error) {
	i := 0
	for i < len(token) && isDigit(token[i]) {
		i++
	}
	if i < 1 || i > 2 || len(token) != i+1 {
		return 0, 0, fmt.Errorf("%w: malformed zone designator %q", ErrInvalidUTMFormat, token)
	}
	zone, err := strconv.Atoi(token[:i])
	if err != nil || zone < 1 || zone > 60 {
		return 0, 0, fmt.Errorf("%w: zone %q out of range", ErrInvalidUTMFormat, token[:i])
	}
	band := token[i]
	if strings.IndexByte(bandLetters, band) < 0 {
		return 0, 0, fmt.Errorf("%w: %c", ErrInvalidZoneLetter, band)
	}
	return zone, band, nil
}

// parseMeters parses a non-negative whole-meter digit string.
func parseMeters(token string) (float64, error) {
	for i := 0; i < len(token); i++ {
		if !isDigit(token[i]) {
			return 0, errors.New("not a digit string")
		}
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
