// Package distance derives shot distances from manual input or GPS pins.
package distance

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/caddie/internal/models"
)

const (
	// EarthRadiusMeters is the IUGG mean Earth radius.
	EarthRadiusMeters = 6371008.8

	// MetersPerYard is the exact international yard.
	MetersPerYard = 0.9144
)

// HaversineMeters returns the great-circle surface distance between a and b.
func HaversineMeters(a, b models.Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h a hair past 1 for antipodal points.
	h = math.Min(1, h)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// HaversineYards is HaversineMeters converted to yards.
func HaversineYards(a, b models.Coordinate) float64 {
	return MetersToYards(HaversineMeters(a, b))
}

// MetersToYards converts meters to yards.
func MetersToYards(m float64) float64 {
	return m / MetersPerYard
}

// ParseManual parses a typed distance in yards.
// Empty, non-numeric or negative input yields 0, which is rejected at save.
func ParseManual(text string) float64 {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return float64(n)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
