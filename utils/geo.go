// utils/geo.go
package utils

import (
	"math"

	"cleanup-game-system/models"
)

// LatLng is a validated WGS84 coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NormalizeLatLng range-checks a coordinate pair. Returns false for
// NaN/Inf or out-of-range values.
func NormalizeLatLng(lat, lng float64) (LatLng, bool) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return LatLng{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return LatLng{}, false
	}
	return LatLng{Lat: lat, Lng: lng}, true
}

// BBox is a lat/lng bounding box for map viewport queries
type BBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

func (b BBox) Contains(p LatLng) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// NormalizeRing validates a territory boundary: every point in range,
// at least 3 distinct points, and the ring closed (first point appended
// at the end when missing).
func NormalizeRing(polygon []models.GeoPoint) ([]models.GeoPoint, bool) {
	ring := make([]models.GeoPoint, 0, len(polygon)+1)
	for _, p := range polygon {
		if _, ok := NormalizeLatLng(p.Lat, p.Lng); !ok {
			continue
		}
		ring = append(ring, p)
	}
	if len(ring) < 3 {
		return nil, false
	}
	first := ring[0]
	last := ring[len(ring)-1]
	if first.Lat != last.Lat || first.Lng != last.Lng {
		ring = append(ring, first)
	}
	return ring, true
}
