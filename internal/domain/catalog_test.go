package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, 10, c.Len())

	delhi, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", delhi.Name)
	assert.Equal(t, Coordinate{Lat: 28.6139, Lng: 77.2090}, delhi.Coordinate)
	assert.Equal(t, 245, delhi.AQI)
	assert.Equal(t, CategoryHazardous, delhi.Category())

	for _, s := range c.Stations() {
		assert.NoError(t, s.Validate(), s.Name)
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	_, err = c.Get(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStationNotFound))
}

func TestCatalog_StationsReturnsCopy(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	list := c.Stations()
	list[0].AQI = 0

	again, err := c.Get(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 245, again.AQI)
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	s := Station{ID: 1, Name: "A", AQI: 10}
	_, err := NewCatalog([]Station{s, s})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseCatalog_CategoryMismatch(t *testing.T) {
	data := []byte(`[{"id":1,"name":"X","lat":1,"lng":1,"aqi":50,"category":"moderate"}]`)
	_, err := ParseCatalog(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestParseCatalog_CategoryOptional(t *testing.T) {
	data := []byte(`[{"id":7,"name":"X","lat":1,"lng":1,"aqi":201}]`)
	c, err := ParseCatalog(data)
	require.NoError(t, err)

	s, err := c.Get(7)
	require.NoError(t, err)
	assert.Equal(t, CategoryHazardous, s.Category())
}

func TestParseCatalog_InvalidJSON(t *testing.T) {
	_, err := ParseCatalog([]byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}

func TestCatalog_ByCategory(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	hazardous := c.ByCategory(CategoryHazardous)
	require.Len(t, hazardous, 2)
	assert.Equal(t, "Delhi", hazardous[0].Name)
	assert.Equal(t, "Kanpur", hazardous[1].Name)

	assert.Empty(t, c.ByCategory(CategoryGood))
}

func TestCatalog_Nearest(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	// Connaught Place, a few km from the Delhi station.
	s, km, ok := c.Nearest(Coordinate{Lat: 28.6315, Lng: 77.2167})
	require.True(t, ok)
	assert.Equal(t, "Delhi", s.Name)
	assert.Less(t, km, 5.0)

	// Exactly on a station.
	s, km, ok = c.Nearest(Coordinate{Lat: 19.0760, Lng: 72.8777})
	require.True(t, ok)
	assert.Equal(t, "Mumbai", s.Name)
	assert.InDelta(t, 0, km, 1e-6)
}

func TestCatalog_NearestEmpty(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	_, _, ok := c.Nearest(Coordinate{})
	assert.False(t, ok)
}

func TestDistanceKm(t *testing.T) {
	delhi := Coordinate{Lat: 28.6139, Lng: 77.2090}
	mumbai := Coordinate{Lat: 19.0760, Lng: 72.8777}

	assert.InDelta(t, 1148, DistanceKm(delhi, mumbai), 2)
	assert.InDelta(t, DistanceKm(delhi, mumbai), DistanceKm(mumbai, delhi), 1e-9)
	assert.InDelta(t, 0, DistanceKm(delhi, delhi), 1e-9)
}
