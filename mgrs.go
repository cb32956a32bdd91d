package gridref

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/geo/s2"
)

// Precision selects how much of an MGRS reference is emitted, from the grid
// zone designator alone down to a 1 m square.
type Precision int

// Precision levels, coarsest first.
const (
	PrecisionGridZone Precision = iota // zone and band only, e.g. "33U"
	Precision100Km                     // 100 km square, e.g. "33UUU"
	Precision10Km
	Precision1Km
	Precision100M
	Precision10M
	Precision1M
)

// Digits returns the number of easting and northing digits emitted at this
// precision, 0 through 5.
func (p Precision) Digits() int {
	if p <= Precision100Km {
		return 0
	}
	return int(p) - 1
}

func (p Precision) valid() bool {
	return p >= PrecisionGridZone && p <= Precision1M
}

// rowLetters is the 20-letter 100 km row cycle, A through V without I and O.
const rowLetters = "ABCDEFGHJKLMNPQRSTUV"

// columnOrigins holds the column letter each 100 km set starts from.
var columnOrigins = [6]byte{'A', 'J', 'S', 'A', 'J', 'S'}

// minNorthings gives the minimum northing of each latitude band, used to
// resolve the 2,000 km ambiguity of the row-letter cycle. Values follow the
// NGA latitude band table.
var minNorthings = map[byte]float64{
	'C': 1100000, 'D': 2000000, 'E': 2800000, 'F': 3700000, 'G': 4600000,
	'H': 5500000, 'J': 6400000, 'K': 7300000, 'L': 8200000, 'M': 9100000,
	'N': 0, 'P': 800000, 'Q': 1700000, 'R': 2600000, 'S': 3500000,
	'T': 4400000, 'U': 5300000, 'V': 6200000, 'W': 7000000, 'X': 7900000,
}

// MGRS converts between geodetic coordinates and MGRS reference strings.
type MGRS struct {
	utm *UTM
}

// NewMGRS constructs an MGRS converter for the WGS84 ellipsoid.
func NewMGRS() *MGRS {
	return NewMGRSForEllipsoid(WGS84)
}

// NewMGRSForEllipsoid constructs an MGRS converter for the given ellipsoid.
func NewMGRSForEllipsoid(e Ellipsoid) *MGRS {
	return &MGRS{utm: NewUTMForEllipsoid(e)}
}

// columnLetter returns the 100 km column letter for a zone and easting. The
// column alphabet restarts every three zones; the +23 bias keeps the offset
// non-negative before the wrap.
func columnLetter(zone int, easting float64) byte {
	index := ((zone-1)*8 + int(easting/100000) + 23) % 24
	return gridLetters[index]
}

// rowLetter returns the 100 km row letter for a zone and northing. Even
// zones use a row cycle shifted by five squares.
func rowLetter(zone int, northing float64) byte {
	shift := 0
	if zone%2 == 0 {
		shift = 5
	}
	index := (int(northing/100000) + shift) % 20
	return rowLetters[index]
}

// ConvertFromGeodetic converts a geodetic coordinate to an MGRS reference
// string at the requested precision, e.g. "33UUU 91776 20073" at 1 m.
// Invalid or polar input returns an error; there is no fallback reference.
func (m *MGRS) ConvertFromGeodetic(geo s2.LatLng, precision Precision) (string, error) {
	coord, err := m.utm.ProjectFromGeodetic(geo)
	if err != nil {
		return "", err
	}
	return m.ConvertFromUTM(coord, precision)
}

// ConvertFromUTM derives the MGRS reference for a UTM grid coordinate at the
// requested precision.
func (m *MGRS) ConvertFromUTM(c UTMCoord, precision Precision) (string, error) {
	if !precision.valid() {
		return "", fmt.Errorf("precision %d out of range [%d, %d]", precision, PrecisionGridZone, Precision1M)
	}
	if c.Zone < 1 || c.Zone > 60 {
		return "", fmt.Errorf("%w: zone %d out of range", ErrInvalidUTMFormat, c.Zone)
	}
	if strings.IndexByte(bandLetters, c.Band) < 0 {
		return "", fmt.Errorf("%w: %c", ErrInvalidZoneLetter, c.Band)
	}
	if c.Easting < 0 || c.Northing < 0 || c.Northing > falseNorthing {
		return "", fmt.Errorf("%w: easting/northing out of range", ErrInvalidUTMFormat)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d%c", c.Zone, c.Band)
	if precision == PrecisionGridZone {
		return b.String(), nil
	}

	easting := math.Round(c.Easting)
	northing := math.Round(c.Northing)
	b.WriteByte(columnLetter(c.Zone, easting))
	b.WriteByte(rowLetter(c.Zone, northing))

	if digits := precision.Digits(); digits > 0 {
		east := fmt.Sprintf("%05d", int(math.Mod(easting, 100000)))
		north := fmt.Sprintf("%05d", int(math.Mod(northing, 100000)))
		fmt.Fprintf(&b, " %s %s", east[:digits], north[:digits])
	}
	return b.String(), nil
}

// ConvertToGeodetic converts an MGRS reference string back to a geodetic
// coordinate. The recovered point is the southwest corner of the square
// named by the reference, to within the precision its digits imply.
func (m *MGRS) ConvertToGeodetic(mgrs string) (s2.LatLng, error) {
	coord, err := m.ConvertToUTM(mgrs)
	if err != nil {
		return s2.LatLng{}, err
	}
	return m.utm.ProjectToGeodetic(coord)
}

// ConvertToUTM resolves an MGRS reference string to the UTM grid coordinate
// of its square's southwest corner.
func (m *MGRS) ConvertToUTM(mgrs string) (UTMCoord, error) {
	zone, band, col, row, eastDigits, northDigits, err := breakMGRS(mgrs)
	if err != nil {
		return UTMCoord{}, err
	}

	set := (zone-1)%6 + 1
	if set < 1 || set > 6 {
		return UTMCoord{}, fmt.Errorf("%w: zone %d yields set %d", ErrInvalidSet, zone, set)
	}
	easting, err := eastingForColumn(col, set)
	if err != nil {
		return UTMCoord{}, err
	}
	northing, err := northingForRow(row, set)
	if err != nil {
		return UTMCoord{}, err
	}

	minNorthing, ok := minNorthings[band]
	if !ok {
		return UTMCoord{}, fmt.Errorf("%w: %c", ErrInvalidZoneLetter, band)
	}
	for northing < minNorthing {
		northing += 2000000
	}

	if digits := len(eastDigits); digits > 0 {
		scale := 100000.0 / float64(pow10(digits))
		east, _ := strconv.Atoi(eastDigits)
		north, _ := strconv.Atoi(northDigits)
		easting += float64(east) * scale
		northing += float64(north) * scale
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

// breakMGRS splits an MGRS reference into the zone number, the band and
// 100 km square letters, and the easting/northing digit strings. Interior
// whitespace is tolerated as long as digits and letters stay grouped; the
// digit remainder must split evenly between easting and northing.
func breakMGRS(mgrs string) (zone int, band, col, row byte, eastDigits, northDigits string, err error) {
	var buf []byte
	for _, r := range mgrs {
		switch {
		case unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			buf = append(buf, byte(r))
		case r >= 'a' && r <= 'z':
			buf = append(buf, byte(r)-'a'+'A')
		case r >= 'A' && r <= 'Z':
			buf = append(buf, byte(r))
		default:
			err = fmt.Errorf("%w: invalid character %q", ErrInvalidMGRSFormat, r)
			return
		}
	}

	i := 0
	for i < len(buf) && isDigit(buf[i]) {
		i++
	}
	if i < 1 || i > 2 {
		err = fmt.Errorf("%w: expected one or two zone digits", ErrInvalidMGRSFormat)
		return
	}
	zone, _ = strconv.Atoi(string(buf[:i]))
	if zone > 60 {
		err = fmt.Errorf("%w: zone %d out of range", ErrInvalidMGRSFormat, zone)
		return
	}

	if len(buf) < i+3 {
		err = fmt.Errorf("%w: missing band or 100 km square letters", ErrInvalidMGRSFormat)
		return
	}
	band, col, row = buf[i], buf[i+1], buf[i+2]
	for _, letter := range []byte{band, col, row} {
		if letter == 'I' || letter == 'O' || isDigit(letter) {
			err = fmt.Errorf("%w: invalid letter %c", ErrInvalidMGRSFormat, letter)
			return
		}
	}

	rest := string(buf[i+3:])
	for j := 0; j < len(rest); j++ {
		if !isDigit(rest[j]) {
			err = fmt.Errorf("%w: trailing letters after the square identifier", ErrInvalidMGRSFormat)
			return
		}
	}
	if len(rest)%2 != 0 {
		err = fmt.Errorf("%w: odd number of position digits (%d)", ErrInvalidMGRSFormat, len(rest))
		return
	}
	if len(rest) > 10 {
		err = fmt.Errorf("%w: too many position digits (%d)", ErrInvalidMGRSFormat, len(rest))
		return
	}
	half := len(rest) / 2
	eastDigits, northDigits = rest[:half], rest[half:]
	return zone, band, col, row, eastDigits, northDigits, nil
}

func pow10(n int) int {
	v := 1
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}

// eastingForColumn walks the 24-letter column alphabet from the set's origin
// letter to the supplied letter, 100 km per step, wrapping Z back to A.
func eastingForColumn(col byte, set int) (float64, error) {
	cur := strings.IndexByte(gridLetters, columnOrigins[set-1])
	target := strings.IndexByte(gridLetters, col)
	if target < 0 {
		return 0, fmt.Errorf("%w: column letter %c", ErrInvalidMGRSFormat, col)
	}
	easting := 100000.0
	for cur != target {
		cur = (cur + 1) % len(gridLetters)
		easting += 100000
	}
	return easting, nil
}

// northingForRow walks the 20-letter row cycle from the set's origin letter
// to the supplied letter, 100 km per step. The wrap from V back to A covers
// W through Z in a single step, so those letters are never valid rows.
func northingForRow(row byte, set int) (float64, error) {
	if row >= 'W' && row <= 'Z' {
		return 0, fmt.Errorf("%w: %c", ErrInvalidNorthingLetter, row)
	}
	origin := byte('A')
	if set%2 == 0 {
		origin = 'F'
	}
	cur := strings.IndexByte(rowLetters, origin)
	target := strings.IndexByte(rowLetters, row)
	if target < 0 {
		return 0, fmt.Errorf("%w: row letter %c", ErrInvalidMGRSFormat, row)
	}
	northing := 0.0
	for cur != target {
		cur = (cur + 1) % len(rowLetters)
		northing += 100000
	}
	return northing, nil
}
