package entity

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ResourceType is the closed set of point-of-interest kinds
type ResourceType string

const (
	TypeShelter ResourceType = "shelter"
	TypeFood    ResourceType = "food"
	TypeMedical ResourceType = "medical"
	TypeSafe    ResourceType = "safe"
	TypeSOS     ResourceType = "sos"
	TypeOther   ResourceType = "other"
)

// ResourceTypes lists every valid type
var ResourceTypes = []ResourceType{TypeShelter, TypeFood, TypeMedical, TypeSafe, TypeSOS, TypeOther}

// TypeFilterAll is the list filter sentinel meaning "no type restriction"
const TypeFilterAll = "all"

// ParseResourceType reports whether s names a known type
func ParseResourceType(s string) (ResourceType, bool) {
	for _, t := range ResourceTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Status is the moderation state of a resource
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusVerified, StatusRejected:
		return Status(s), true
	}
	return "", false
}

var (
	ErrCoordinateMissing    = errors.New("coordinate is missing")
	ErrCoordinateNotNumeric = errors.New("coordinate is not numeric")
	ErrLatitudeRange        = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange       = errors.New("longitude must be between -180 and 180")
)

// Point is a geographic position stored in (longitude, latitude) order,
// the axis order PostGIS and GeoJSON use.
type Point struct {
	Lng float64
	Lat float64
}

// NewPoint validates ranges and builds the point. Arguments are taken in the
// conventional (lat, lng) order; the stored order is (lng, lat).
func NewPoint(lat, lng float64) (Point, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Point{}, ErrLatitudeRange
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return Point{}, ErrLongitudeRange
	}
	return Point{Lng: lng, Lat: lat}, nil
}

// ParseCoordinate coerces a decoded JSON value into a float.
// nil means the field was absent; 0 is a valid coordinate.
func ParseCoordinate(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, ErrCoordinateMissing
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, ErrCoordinateNotNumeric
		}
		f = p
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, ErrCoordinateNotNumeric
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrCoordinateNotNumeric
		}
		f = p
	default:
		return 0, ErrCoordinateNotNumeric
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrCoordinateNotNumeric
	}
	return f, nil
}

// Resource is a submitted point of interest and its moderation state
type Resource struct {
	ID          string
	Type        ResourceType
	Name        string
	Address     string
	Description string
	Location    Point
	Status      Status
	SubmittedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResourceSummary is the public projection served to map consumers
type ResourceSummary struct {
	ID      string       `json:"id"`
	Type    ResourceType `json:"type"`
	Name    string       `json:"name"`
	Address string       `json:"address"`
	Lat     float64      `json:"lat"`
	Lng     float64      `json:"lng"`
}

// Summary projects a resource to its public shape
func (r *Resource) Summary() ResourceSummary {
	return ResourceSummary{
		ID:      r.ID,
		Type:    r.Type,
		Name:    r.Name,
		Address: r.Address,
		Lat:     r.Location.Lat,
		Lng:     r.Location.Lng,
	}
}
