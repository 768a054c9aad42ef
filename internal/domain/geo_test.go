package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	v := ParseCoordinate("41,1171")
	require.NotNil(t, v)
	assert.InDelta(t, 41.1171, *v, 1e-9)

	assert.Nil(t, ParseCoordinate(""))
	assert.Nil(t, ParseCoordinate("north"))
	assert.Nil(t, ParseCoordinate("NaN"))
}

func TestParseCoordinates(t *testing.T) {
	c := ParseCoordinates("41.1171", "16,8719")
	require.NotNil(t, c)
	assert.InDelta(t, 16.8719, c.Longitude, 1e-9)

	assert.Nil(t, ParseCoordinates("91", "16"), "latitude out of range")
	assert.Nil(t, ParseCoordinates("41", ""), "missing longitude")
}

func TestCoordinatesLatLng(t *testing.T) {
	var none *Coordinates
	lat, lng := none.LatLng()
	assert.Nil(t, lat)
	assert.Nil(t, lng)

	lat, lng = (&Coordinates{Latitude: 1, Longitude: 2}).LatLng()
	assert.Equal(t, 1.0, *lat)
	assert.Equal(t, 2.0, *lng)
	assert.Equal(t, &Coordinates{Latitude: 1, Longitude: 2}, NewCoordinates(lat, lng))
}
