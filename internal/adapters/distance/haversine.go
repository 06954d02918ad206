package distance

import (
	"math"

	"fuel-logistics-service/internal/domain"
	"fuel-logistics-service/internal/ports"
)

const (
	earthRadiusMeters = 6371000.0

	// Alpine roads between the valley and the pass wind well beyond the
	// great-circle distance.
	roadWindingFactor = 1.35

	avgTruckSpeedKmh = 45.0
)

func haversineMeters(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// haversineEstimate approximates a road leg from the great-circle distance,
// used when no routing API is configured.
func haversineEstimate(a, b domain.Coordinates) ports.TravelResult {
	meters := haversineMeters(a, b) * roadWindingFactor
	seconds := meters / (avgTruckSpeedKmh * 1000 / 3600)

	return ports.TravelResult{
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(seconds)),
	}
}
