package gridref

import "errors"

// Error kinds reported by the conversion and decode paths. Call sites wrap
// these with detail about the offending value; match with errors.Is.
var (
	ErrInvalidLatitude        = errors.New("latitude out of range [-90, 90]")
	ErrInvalidLongitude       = errors.New("longitude out of range [-180, 180]")
	ErrInvalidUTMFormat       = errors.New("invalid UTM reference")
	ErrInvalidMGRSFormat      = errors.New("invalid MGRS reference")
	ErrInvalidSet             = errors.New("100 km set out of range [1, 6]")
	ErrInvalidNorthingLetter  = errors.New("invalid 100 km row letter")
	ErrInvalidZoneLetter      = errors.New("invalid latitude band letter")
	ErrUnsupportedPolarRegion = errors.New("latitude outside the supported UTM bands")
)
