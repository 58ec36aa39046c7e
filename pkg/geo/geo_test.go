package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceAlongEquator(t *testing.T) {
	d5 := Distance(0, 0, 0, 5, Kilometers)
	d20 := Distance(0, 0, 0, 20, Kilometers)

	assert.InDelta(t, 556.0, d5, 1.0)
	assert.InDelta(t, 2224.0, d20, 3.0)
	assert.Less(t, d5, 1000.0)
	assert.Greater(t, d20, 1000.0)
}

func TestDistanceMiles(t *testing.T) {
	km := Distance(51.5074, -0.1278, 48.8566, 2.3522, Kilometers)
	mi := Distance(51.5074, -0.1278, 48.8566, 2.3522, Miles)

	assert.InDelta(t, 343.5, km, 2.0)
	assert.InDelta(t, km*earthRadiusMi/earthRadiusKm, mi, 0.001)
}

func TestDistanceSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Distance(12.5, 40.1, 12.5, 40.1, Kilometers))
}

func TestParseUnit(t *testing.T) {
	assert.Equal(t, Kilometers, ParseUnit(""))
	assert.Equal(t, Kilometers, ParseUnit("km"))
	assert.Equal(t, Miles, ParseUnit("mi"))
	assert.Equal(t, Miles, ParseUnit("miles"))
	assert.Equal(t, 6371.0, EarthRadius(Kilometers))
	assert.Equal(t, 3959.0, EarthRadius(Miles))
}

func TestHaversineSQLUsesPlaceholders(t *testing.T) {
	expr, args := HaversineSQL("events.latitude", "events.longitude", 48.8566, 2.3522, Miles)

	assert.Equal(t, len(args), strings.Count(expr, "?"))
	assert.NotContains(t, expr, "48.8566")
	assert.NotContains(t, expr, "2.3522")
	assert.Equal(t, []interface{}{3959.0, 48.8566, 2.3522, 48.8566}, args)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(91, 0))
	assert.False(t, ValidCoordinates(0, -181))
}
