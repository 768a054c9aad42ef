package domain

import (
	"math"
	"strconv"
	"strings"
)

// Coordinates is a geographic point. A nil *Coordinates means "not geolocated".
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinates returns a point only when both components are present
func NewCoordinates(lat, lng *float64) *Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &Coordinates{Latitude: *lat, Longitude: *lng}
}

// LatLng splits c back into nullable columns
func (c *Coordinates) LatLng() (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Latitude, c.Longitude
	return &lat, &lng
}

// ParseCoordinate accepts "12,345" or "12.345". Malformed input yields nil.
func ParseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseLatitude is ParseCoordinate restricted to [-90, 90]
func ParseLatitude(raw string) *float64 {
	return withinRange(ParseCoordinate(raw), 90)
}

// ParseLongitude is ParseCoordinate restricted to [-180, 180]
func ParseLongitude(raw string) *float64 {
	return withinRange(ParseCoordinate(raw), 180)
}

// ParseCoordinates parses a latitude/longitude pair, nil unless both are valid
func ParseCoordinates(lat, lng string) *Coordinates {
	return NewCoordinates(ParseLatitude(lat), ParseLongitude(lng))
}

func withinRange(v *float64, limit float64) *float64 {
	if v == nil || *v < -limit || *v > limit {
		return nil
	}
	return v
}
