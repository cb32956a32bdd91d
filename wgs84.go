// Package gridref converts geographic coordinates on the WGS84 ellipsoid to
// and from the Universal Transverse Mercator (UTM) and Military Grid
// Reference System (MGRS) grid notations.
package gridref

// WGS84 is the reference ellipsoid used by the default converters.
var WGS84 = NewEllipsoid(6378137.0, 298.257223563)

// DefaultUTMConverter is a WGS84 ellipsoid based UTM converter.
var DefaultUTMConverter *UTM

// DefaultMGRSConverter is a WGS84 ellipsoid based MGRS converter.
var DefaultMGRSConverter *MGRS

func init() {
	DefaultUTMConverter = NewUTM()
	DefaultMGRSConverter = NewMGRS()
}
