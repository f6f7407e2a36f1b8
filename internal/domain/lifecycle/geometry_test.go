package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

var testYard = model.Point{Lat: 53.6553, Lng: -6.4196}

func sizePtr(s model.SkipSize) *model.SkipSize { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestBuildGeometryPickUsesYardOnly(t *testing.T) {
	g := BuildGeometry(model.SkipActionPick, testYard, &Position{Lat: 53.5, Lng: -6.4})

	yard, ok := g.Get(model.CoordinateRoleYard)
	require.True(t, ok)
	assert.Equal(t, testYard.Lat, yard.Lat)
	assert.Equal(t, testYard.Lng, yard.Lng)

	_, ok = g.Get(model.CoordinateRoleSite)
	assert.False(t, ok, "pick must not record a site coordinate")

	pos, ok := g.Get(model.CoordinateRoleDriverPosition)
	require.True(t, ok)
	assert.Equal(t, 53.5, pos.Lat)
	assert.NoError(t, g.Validate())
}

func TestBuildGeometryDropUsesMeasuredFix(t *testing.T) {
	g := BuildGeometry(model.SkipActionDrop, testYard, &Position{Lat: 53.5, Lng: -6.4, AccuracyM: floatPtr(12)})

	_, ok := g.Get(model.CoordinateRoleYard)
	assert.False(t, ok, "drop must not record a yard coordinate")

	site, ok := g.Get(model.CoordinateRoleSite)
	require.True(t, ok)
	assert.Equal(t, 53.5, site.Lat)
	assert.Equal(t, -6.4, site.Lng)
	assert.Nil(t, site.AccuracyM)

	pos, ok := g.Get(model.CoordinateRoleDriverPosition)
	require.True(t, ok)
	require.NotNil(t, pos.AccuracyM)
	assert.Equal(t, 12.0, *pos.AccuracyM)
}

func TestBuildGeometryPickDropWithoutFix(t *testing.T) {
	g := BuildGeometry(model.SkipActionPickDrop, testYard, nil)
	assert.Len(t, g, 1)
	_, ok := g.Get(model.CoordinateRoleYard)
	assert.True(t, ok)
}

func TestResolveSkipSize(t *testing.T) {
	size, ok := ResolveSkipSize(nil, sizePtr(model.SkipSize20), sizePtr(model.SkipSize12))
	require.True(t, ok)
	assert.Equal(t, model.SkipSize20, size)

	size, ok = ResolveSkipSize(sizePtr(model.SkipSize8), sizePtr(model.SkipSize20), nil)
	require.True(t, ok)
	assert.Equal(t, model.SkipSize8, size)

	size, ok = ResolveSkipSize(nil, nil, sizePtr(model.SkipSize12))
	require.True(t, ok)
	assert.Equal(t, model.SkipSize12, size)

	_, ok = ResolveSkipSize(nil, nil, nil)
	assert.False(t, ok)
}

func TestBuildCompletionDrop(t *testing.T) {
	now := time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC)
	notes := "Left behind gate"
	c, err := BuildCompletion(CompletionInput{
		Job: &model.SkipJob{ID: "job-1"},
		Request: &model.CompleteJobRequest{
			Action:      model.SkipActionDrop,
			DropSize:    sizePtr(model.SkipSize20),
			Lat:         floatPtr(53.5),
			Lng:         floatPtr(-6.4),
			DriverNotes: &notes,
		},
		Customer:    &model.Customer{Name: "Acme Ltd"},
		Yard:        testYard,
		CompletedAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, "job-1", c.SkipJobID)
	assert.Equal(t, model.SkipSize20, c.SkipSize)
	require.NotNil(t, c.DropLat)
	assert.Equal(t, 53.5, *c.DropLat)
	assert.Nil(t, c.PickLat)
	assert.Nil(t, c.PickLng)
	require.NotNil(t, c.SiteCompany)
	assert.Equal(t, "Acme Ltd", *c.SiteCompany)
	assert.Equal(t, now, c.CompletedTime)
	assert.Equal(t, &notes, c.DriverNotes)
}

func TestBuildCompletionPick(t *testing.T) {
	c, err := BuildCompletion(CompletionInput{
		Job: &model.SkipJob{ID: "job-2"},
		Request: &model.CompleteJobRequest{
			Action:   model.SkipActionPick,
			PickSize: sizePtr(model.SkipSize12),
			Lat:      floatPtr(53.1),
			Lng:      floatPtr(-6.1),
		},
		Yard: testYard,
	})
	require.NoError(t, err)

	require.NotNil(t, c.PickLat)
	assert.Equal(t, testYard.Lat, *c.PickLat)
	assert.Equal(t, testYard.Lng, *c.PickLng)
	assert.Nil(t, c.DropLat)
	assert.Nil(t, c.DropLng)
	assert.Nil(t, c.SiteCompany)
	require.NotNil(t, c.Lat)
	assert.Equal(t, 53.1, *c.Lat)
}

func TestBuildCompletionUnresolvedSize(t *testing.T) {
	_, err := BuildCompletion(CompletionInput{
		Job:     &model.SkipJob{ID: "job-3"},
		Request: &model.CompleteJobRequest{Action: model.SkipActionPick},
	})
	assert.ErrorIs(t, err, ErrSkipSizeUnresolved)
}
