package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// GeoPoint is a GeoJSON point. Coordinates are stored in the conventional
// [longitude, latitude] order so Mongo's 2dsphere index can query them.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(longitude, latitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }
func (p GeoPoint) Latitude() float64  { return p.Coordinates[1] }

var ErrInvalidLocation = errors.New("valid location (latitude/longitude) is required")

// LocationInput captures the shapes clients send a location in:
//   - a nested object {"latitude":..,"longitude":..} or {"lat":..,"lng":..}
//   - the same object JSON-encoded as a string (FormData)
//   - flat top-level latitude/longitude (or lat/lng) fields
type LocationInput struct {
	Location  json.RawMessage `json:"location" form:"location"`
	Latitude  *json.Number    `json:"latitude" form:"latitude"`
	Longitude *json.Number    `json:"longitude" form:"longitude"`
	Lat       *json.Number    `json:"lat" form:"lat"`
	Lng       *json.Number    `json:"lng" form:"lng"`
}

type locationObject struct {
	Latitude  *json.Number `json:"latitude"`
	Longitude *json.Number `json:"longitude"`
	Lat       *json.Number `json:"lat"`
	Lng       *json.Number `json:"lng"`
}

// ParseLocation normalizes the accepted input shapes to a single GeoJSON
// point. It returns ErrInvalidLocation when no finite coordinate pair can be
// extracted.
func ParseLocation(in LocationInput) (GeoPoint, error) {
	var lat, lng *json.Number

	if len(in.Location) > 0 {
		raw := in.Location

		// The nested object may itself arrive JSON-encoded as a string.
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			raw = []byte(asString)
		}

		var obj locationObject
		if err := json.Unmarshal(raw, &obj); err == nil {
			lat = firstNumber(obj.Latitude, obj.Lat)
			lng = firstNumber(obj.Longitude, obj.Lng)
		}
	}

	if lat == nil {
		lat = firstNumber(in.Latitude, in.Lat)
	}
	if lng == nil {
		lng = firstNumber(in.Longitude, in.Lng)
	}

	latVal, ok1 := toFinite(lat)
	lngVal, ok2 := toFinite(lng)
	if !ok1 || !ok2 {
		return GeoPoint{}, ErrInvalidLocation
	}

	return NewGeoPoint(lngVal, latVal), nil
}

// ParseFormLocation normalizes a location taken from multipart/urlencoded
// form values, where every field arrives as a string.
func ParseFormLocation(location, latitude, longitude, lat, lng string) (GeoPoint, error) {
	in := LocationInput{}
	if location != "" {
		// Form values are not JSON; quote bare strings so the raw message is valid.
		if json.Valid([]byte(location)) {
			in.Location = json.RawMessage(location)
		} else {
			quoted, _ := json.Marshal(location)
			in.Location = json.RawMessage(quoted)
		}
	}
	in.Latitude = formNumber(latitude)
	in.Longitude = formNumber(longitude)
	in.Lat = formNumber(lat)
	in.Lng = formNumber(lng)
	return ParseLocation(in)
}

func formNumber(s string) *json.Number {
	if s == "" {
		return nil
	}
	n := json.Number(s)
	return &n
}

func firstNumber(values ...*json.Number) *json.Number {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func toFinite(n *json.Number) (float64, bool) {
	if n == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
