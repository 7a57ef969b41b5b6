package geo

import (
	"errors"
	"math"
)

const (
	earthRadiusMeters = 6371000.0

	// DefaultCheckInRadius is the verification radius around a spot in meters.
	DefaultCheckInRadius = 300.0
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return ErrInvalidCoordinates
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Distance returns the great-circle distance between a and b in meters,
// using the haversine formula on a spherical earth model.
func Distance(a, b Coordinates) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// IsWithinRange reports whether a computed distance falls inside the radius.
// The boundary itself counts as in range.
func IsWithinRange(distance, radius float64) bool {
	return distance <= radius
}
