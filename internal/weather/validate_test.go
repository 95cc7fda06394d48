package weather

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCityAccepts(t *testing.T) {
	cases := []string{
		"London",
		"New York",
		"Saint-Denis",
		"Stratford-upon-Avon",
		"Washington, D.C.",
		"  Paris  ", // trimmed
	}
	for _, city := range cases {
		q, err := ValidateCity(city, "")
		if err != nil {
			t.Errorf("ValidateCity(%q) unexpectedly failed: %v", city, err)
			continue
		}
		if q.Kind != QueryCity {
			t.Errorf("ValidateCity(%q) kind = %q, want %q", city, q.Kind, QueryCity)
		}
		if q.Units != UnitsMetric {
			t.Errorf("ValidateCity(%q) units = %q, want metric default", city, q.Units)
		}
	}
}

func TestValidateCityRejects(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"whitespace": "   ",
		"digits":     "London123",
		"symbols":    "London!",
		"sql":        "'; DROP TABLE--",
		"too long":   strings.Repeat("a", 101),
	}
	for name, city := range cases {
		_, err := ValidateCity(city, "metric")
		if err == nil {
			t.Errorf("%s: ValidateCity(%q) should have failed", name, city)
			continue
		}
		var gwErr *Error
		if !errors.As(err, &gwErr) || gwErr.Kind != KindInvalidInput {
			t.Errorf("%s: expected InvalidInput error, got %v", name, err)
		}
	}
}

func TestValidateCityUnits(t *testing.T) {
	q, err := ValidateCity("London", "imperial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Units != UnitsImperial {
		t.Fatalf("units = %q, want imperial", q.Units)
	}

	if _, err := ValidateCity("London", "kelvin"); err == nil {
		t.Fatal("unknown units should be rejected")
	}
}

func TestValidateCoordinates(t *testing.T) {
	q, err := ValidateCoordinates("51.5074", "-0.1278", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != QueryCoordinates {
		t.Fatalf("kind = %q, want %q", q.Kind, QueryCoordinates)
	}
	if q.Lat != 51.5074 || q.Lon != -0.1278 {
		t.Fatalf("coordinates = (%v, %v), want (51.5074, -0.1278)", q.Lat, q.Lon)
	}
}

func TestValidateCoordinatesRejectsOutOfRange(t *testing.T) {
	cases := [][2]string{
		{"90.1", "0"},
		{"-91", "0"},
		{"0", "180.5"},
		{"0", "-181"},
	}
	for _, c := range cases {
		if _, err := ValidateCoordinates(c[0], c[1], ""); err == nil {
			t.Errorf("ValidateCoordinates(%q, %q) should have failed", c[0], c[1])
		}
	}
}

func TestValidateCoordinatesRejectsNonNumeric(t *testing.T) {
	cases := [][2]string{
		{"abc", "0"},
		{"0", ""},
		{"NaN", "0"},
		{"0", "Inf"},
	}
	for _, c := range cases {
		if _, err := ValidateCoordinates(c[0], c[1], ""); err == nil {
			t.Errorf("ValidateCoordinates(%q, %q) should have failed", c[0], c[1])
		}
	}
}

func TestValidateSuggestionsShortCircuit(t *testing.T) {
	for _, q := range []string{"", "a", " a ", " "} {
		if _, tooShort := ValidateSuggestions(q, ""); !tooShort {
			t.Errorf("ValidateSuggestions(%q) should short-circuit", q)
		}
	}

	query, tooShort := ValidateSuggestions("Lo", "")
	if tooShort {
		t.Fatal("two-character query should not short-circuit")
	}
	if query.Limit != 5 {
		t.Fatalf("limit = %d, want default 5", query.Limit)
	}
}

func TestValidateSuggestionsLimitClamped(t *testing.T) {
	cases := map[string]int{
		"":    5,
		"3":   3,
		"0":   1,
		"-2":  1,
		"50":  10,
		"abc": 5,
	}
	for raw, want := range cases {
		q, _ := ValidateSuggestions("Lon", raw)
		if q.Limit != want {
			t.Errorf("limit %q clamped to %d, want %d", raw, q.Limit, want)
		}
	}
}
