// Package geo holds the great-circle distance math shared by the event
// proximity query and its callers.
package geo

import "math"

type Unit string

const (
	Kilometers Unit = "km"
	Miles      Unit = "mi"
)

const (
	earthRadiusKm = 6371.0
	earthRadiusMi = 3959.0
)

// ParseUnit maps a request value to a unit. Empty and "km" mean kilometers,
// anything else is treated as miles.
func ParseUnit(s string) Unit {
	if s == "" || s == string(Kilometers) {
		return Kilometers
	}
	return Miles
}

func EarthRadius(u Unit) float64 {
	if u == Kilometers {
		return earthRadiusKm
	}
	return earthRadiusMi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the haversine distance between two points in the given unit.
func Distance(lat1, lon1, lat2, lon2 float64, u Unit) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius(u) * c
}

// ValidCoordinates reports whether lat/lon lie on the globe.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// HaversineSQL returns a SQL expression computing the distance from (lat, lon)
// to the row's latColumn/lonColumn, and its bound arguments. Only the column
// names are spliced into the text; every caller value goes through a placeholder.
// The acos argument is clamped so identical points yield 0 rather than NULL.
func HaversineSQL(latColumn, lonColumn string, lat, lon float64, u Unit) (string, []interface{}) {
	expr := "(? * ACOS(LEAST(1, GREATEST(-1, " +
		"COS(RADIANS(?)) * COS(RADIANS(" + latColumn + ")) * " +
		"COS(RADIANS(" + lonColumn + ") - RADIANS(?)) + " +
		"SIN(RADIANS(?)) * SIN(RADIANS(" + latColumn + "))))))"

	return expr, []interface{}{EarthRadius(u), lat, lon, lat}
}
