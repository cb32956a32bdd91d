package gridref_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridref"
)

func TestMGRSFixedVectors(t *testing.T) {
	conv := gridref.NewMGRS()
	for _, v := range cityVectors {
		t.Run(v.name, func(t *testing.T) {
			got, err := conv.ConvertFromGeodetic(s2.LatLngFromDegrees(v.lat, v.lng), gridref.Precision1M)
			require.NoError(t, err)
			assert.Equal(t, v.mgrs, got)

			geo, err := conv.ConvertToGeodetic(v.mgrs)
			require.NoError(t, err)
			assert.InDelta(t, v.lat, geo.Lat.Degrees(), 1e-3)
			assert.InDelta(t, v.lng, geo.Lng.Degrees(), 1e-3)
		})
	}
}

func TestMGRSConvertFromUTM(t *testing.T) {
	conv := gridref.NewMGRS()
	for _, v := range cityVectors {
		coord, err := gridref.ParseUTM(v.utm)
		require.NoError(t, err)
		got, err := conv.ConvertFromUTM(coord, gridref.Precision1M)
		require.NoError(t, err)
		assert.Equal(t, v.mgrs, got, v.name)
	}
}

func TestMGRSConvertToUTM(t *testing.T) {
	conv := gridref.NewMGRS()
	coord, err := conv.ConvertToUTM("33UUU 91776 20073")
	require.NoError(t, err)
	assert.Equal(t, 33, coord.Zone)
	assert.Equal(t, byte('U'), coord.Band)
	assert.Equal(t, gridref.HemisphereNorth, coord.Hemisphere)
	assert.Equal(t, 391776.0, coord.Easting)
	assert.Equal(t, 5820073.0, coord.Northing)
}

func TestMGRSPrecisionLevels(t *testing.T) {
	conv := gridref.NewMGRS()
	geo := s2.LatLngFromDegrees(52.520007, 13.404954)

	levels := []struct {
		precision gridref.Precision
		want      string
	}{
		{gridref.PrecisionGridZone, "33U"},
		{gridref.Precision100Km, "33UUU"},
		{gridref.Precision10Km, "33UUU 9 2"},
		{gridref.Precision1Km, "33UUU 91 20"},
		{gridref.Precision100M, "33UUU 917 200"},
		{gridref.Precision10M, "33UUU 9177 2007"},
		{gridref.Precision1M, "33UUU 91776 20073"},
	}
	for _, l := range levels {
		got, err := conv.ConvertFromGeodetic(geo, l.precision)
		require.NoError(t, err)
		assert.Equal(t, l.want, got)
	}

	_, err := conv.ConvertFromGeodetic(geo, gridref.Precision1M+1)
	assert.Error(t, err)
	_, err = conv.ConvertFromGeodetic(geo, gridref.PrecisionGridZone-1)
	assert.Error(t, err)
}

func TestMGRSMonotonicPrecision(t *testing.T) {
	conv := gridref.NewMGRS()
	geo := s2.LatLngFromDegrees(52.520007, 13.404954)

	fine, err := conv.ConvertFromGeodetic(geo, gridref.Precision1M)
	require.NoError(t, err)
	base, err := conv.ConvertToGeodetic(fine)
	require.NoError(t, err)

	for precision := gridref.Precision100Km; precision <= gridref.Precision1M; precision++ {
		ref, err := conv.ConvertFromGeodetic(geo, precision)
		require.NoError(t, err)
		dec, err := conv.ConvertToGeodetic(ref)
		require.NoError(t, err)

		// The coarse decode names the southwest corner of a square that
		// contains the fine decode, so the error is bounded by the square's
		// diagonal.
		cell := 100000.0 / math.Pow(10, float64(precision.Digits()))
		meters := base.Distance(dec).Radians() * 6378137
		assert.LessOrEqual(t, meters, cell*math.Sqrt2+1, "precision %d (%q)", precision, ref)
	}
}

func TestMGRSRowLetterRejection(t *testing.T) {
	conv := gridref.NewMGRS()
	for _, row := range []string{"W", "X", "Y", "Z"} {
		_, err := conv.ConvertToGeodetic("33UU" + row + " 91776 20073")
		assert.ErrorIs(t, err, gridref.ErrInvalidNorthingLetter, "row %s", row)
	}
}

func TestMGRSOddDigitsRejected(t *testing.T) {
	conv := gridref.NewMGRS()
	_, err := conv.ConvertToGeodetic("33UUU 91776 2007")
	assert.ErrorIs(t, err, gridref.ErrInvalidMGRSFormat)
	_, err = conv.ConvertToGeodetic("33UUU917762007")
	assert.ErrorIs(t, err, gridref.ErrInvalidMGRSFormat)
}

func TestMGRSInvalidBandLetter(t *testing.T) {
	conv := gridref.NewMGRS()
	// Polar band letters decode through the square letters but have no
	// entry in the minimum-northing table.
	for _, band := range []string{"A", "B", "Y", "Z"} {
		_, err := conv.ConvertToGeodetic("33" + band + "UU 91776 20073")
		assert.ErrorIs(t, err, gridref.ErrInvalidZoneLetter, "band %s", band)
	}
	// I and O never appear in grid references at all.
	_, err := conv.ConvertToGeodetic("33IUU 91776 20073")
	assert.ErrorIs(t, err, gridref.ErrInvalidMGRSFormat)
}

func TestMGRSInvalidSet(t *testing.T) {
	conv := gridref.NewMGRS()
	_, err := conv.ConvertToGeodetic("0CAA 1 1")
	assert.ErrorIs(t, err, gridref.ErrInvalidSet)
}

func TestMGRSDecodeSpacingForms(t *testing.T) {
	conv := gridref.NewMGRS()
	want, err := conv.ConvertToGeodetic("33UUU 91776 20073")
	require.NoError(t, err)

	for _, s := range []string{"33UUU9177620073", "33uuu 91776 20073", " 33UUU  91776  20073 "} {
		got, err := conv.ConvertToGeodetic(s)
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, want, got, "input %q", s)
	}
}

func TestMGRSGridZoneOnly(t *testing.T) {
	conv := gridref.NewMGRS()
	got, err := conv.ConvertFromGeodetic(s2.LatLngFromDegrees(52.520007, 13.404954), gridref.PrecisionGridZone)
	require.NoError(t, err)
	assert.Equal(t, "33U", got)

	// A bare grid zone designator carries no 100 km square to decode.
	_, err = conv.ConvertToGeodetic("33U")
	assert.ErrorIs(t, err, gridref.ErrInvalidMGRSFormat)
}

func TestMGRSRoundTrip(t *testing.T) {
	conv := gridref.NewMGRS()
	for lat := -79.5; lat < 84; lat += 2.5 {
		for lng := -180.0; lng < 180; lng += 3.75 {
			geo := s2.LatLngFromDegrees(lat, lng)
			enc, err := conv.ConvertFromGeodetic(geo, gridref.Precision1M)
			require.NoError(t, err, "encode %v", geo)
			dec, err := conv.ConvertToGeodetic(enc)
			require.NoError(t, err, "decode %q", enc)
			if math.Abs(dec.Lat.Degrees()-lat) > 1e-3 ||
				math.Abs(dec.Lng.Degrees()-lng) > 1e-3 {
				t.Fatalf("round trip %v via %q gave %v", geo, enc, dec)
			}
		}
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, gridref.ValidMGRS("33UUU 91776 20073"))
	assert.True(t, gridref.ValidMGRS("33UUU"))
	assert.True(t, gridref.ValidMGRS("33U"))
	assert.False(t, gridref.ValidMGRS("33UUU 91776 2007"))
	assert.False(t, gridref.ValidMGRS("33UUU9177620073"))
	assert.False(t, gridref.ValidMGRS("99ZZZ"))
	assert.False(t, gridref.ValidMGRS(""))

	assert.True(t, gridref.ValidUTM("33U 391776 5820073"))
	assert.True(t, gridref.ValidUTM("33 U 391776 5820073"))
	assert.False(t, gridref.ValidUTM("33U 391776"))
	assert.False(t, gridref.ValidUTM("33UUU 91776 20073"))
}
