package models

import (
	"encoding/json"
	"testing"
)

func TestParseLocationShapes(t *testing.T) {
	// Every accepted input shape must normalize to the identical
	// [longitude, latitude] pair.
	want := []float64{80.27, 13.08}

	tests := []struct {
		name  string
		input LocationInput
	}{
		{
			"nested latitude/longitude object",
			LocationInput{Location: json.RawMessage(`{"latitude":13.08,"longitude":80.27}`)},
		},
		{
			"nested lat/lng object",
			LocationInput{Location: json.RawMessage(`{"lat":13.08,"lng":80.27}`)},
		},
		{
			"JSON-encoded string",
			LocationInput{Location: json.RawMessage(`"{\"latitude\":13.08,\"longitude\":80.27}"`)},
		},
		{
			"flat latitude/longitude fields",
			LocationInput{Latitude: numberPtr("13.08"), Longitude: numberPtr("80.27")},
		},
		{
			"flat lat/lng fields",
			LocationInput{Lat: numberPtr("13.08"), Lng: numberPtr("80.27")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := ParseLocation(tt.input)
			if err != nil {
				t.Fatalf("ParseLocation: %v", err)
			}
			if point.Type != "Point" {
				t.Errorf("type = %q, want Point", point.Type)
			}
			if len(point.Coordinates) != 2 || point.Coordinates[0] != want[0] || point.Coordinates[1] != want[1] {
				t.Errorf("coordinates = %v, want %v", point.Coordinates, want)
			}
		})
	}
}

func TestParseFormLocation(t *testing.T) {
	point, err := ParseFormLocation("", "13.08", "80.27", "", "")
	if err != nil {
		t.Fatalf("ParseFormLocation: %v", err)
	}
	if point.Longitude() != 80.27 || point.Latitude() != 13.08 {
		t.Errorf("got [%v, %v], want [80.27, 13.08]", point.Longitude(), point.Latitude())
	}

	point, err = ParseFormLocation(`{"latitude":13.08,"longitude":80.27}`, "", "", "", "")
	if err != nil {
		t.Fatalf("ParseFormLocation with JSON string: %v", err)
	}
	if point.Longitude() != 80.27 || point.Latitude() != 13.08 {
		t.Errorf("got [%v, %v], want [80.27, 13.08]", point.Longitude(), point.Latitude())
	}
}

func TestParseLocationInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input LocationInput
	}{
		{"empty input", LocationInput{}},
		{"latitude only", LocationInput{Latitude: numberPtr("13.08")}},
		{"non-numeric", LocationInput{Latitude: numberPtr("north"), Longitude: numberPtr("east")}},
		{"garbage location string", LocationInput{Location: json.RawMessage(`"not json at all"`)}},
		{"nan longitude", LocationInput{Latitude: numberPtr("13.08"), Longitude: numberPtr("NaN")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLocation(tt.input); err != ErrInvalidLocation {
				t.Errorf("ParseLocation error = %v, want ErrInvalidLocation", err)
			}
		})
	}
}

func TestNestedObjectWinsOverFlatFields(t *testing.T) {
	input := LocationInput{
		Location:  json.RawMessage(`{"latitude":13.08,"longitude":80.27}`),
		Latitude:  numberPtr("0"),
		Longitude: numberPtr("0"),
	}

	point, err := ParseLocation(input)
	if err != nil {
		t.Fatalf("ParseLocation: %v", err)
	}
	if point.Longitude() != 80.27 || point.Latitude() != 13.08 {
		t.Errorf("got [%v, %v], nested object should take precedence", point.Longitude(), point.Latitude())
	}
}

func numberPtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}
