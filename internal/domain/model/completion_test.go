package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryValidateRejectsDuplicateRole(t *testing.T) {
	g := Geometry{
		{Role: CoordinateRoleSite, Lat: 53.5, Lng: -6.4},
		{Role: CoordinateRoleSite, Lat: 53.6, Lng: -6.3},
	}
	assert.ErrorIs(t, g.Validate(), ErrDuplicateCoordinateRole)

	g = Geometry{{Role: "roof", Lat: 1, Lng: 1}}
	assert.Error(t, g.Validate())
}

func TestCompletionGeometryRoundTrip(t *testing.T) {
	acc := 8.0
	g := Geometry{
		{Role: CoordinateRoleYard, Lat: 53.6553, Lng: -6.4196},
		{Role: CoordinateRoleDriverPosition, Lat: 53.5, Lng: -6.4, AccuracyM: &acc},
	}
	var c Completion
	require.NoError(t, c.SetGeometry(g))

	require.NotNil(t, c.PickLat)
	assert.InDelta(t, 53.6553, *c.PickLat, 1e-9)
	assert.Nil(t, c.DropLat)
	assert.Nil(t, c.DropLng)
	require.NotNil(t, c.AccuracyM)
	assert.InDelta(t, 8.0, *c.AccuracyM, 1e-9)

	assert.Equal(t, g, c.Geometry())

	_, ok := c.Geometry().Get(CoordinateRoleSite)
	assert.False(t, ok)
}

func TestCompletionSetGeometryClearsAbsentRoles(t *testing.T) {
	lat, lng := 1.0, 2.0
	c := Completion{DropLat: &lat, DropLng: &lng}
	require.NoError(t, c.SetGeometry(nil))
	assert.Nil(t, c.DropLat)
	assert.Empty(t, c.Geometry())
}
