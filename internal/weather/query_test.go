package weather

import "testing"

func TestQueryKeyDeterministic(t *testing.T) {
	a := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}
	b := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}
	if a.Key() != b.Key() {
		t.Fatalf("equal queries produced different keys: %q vs %q", a.Key(), b.Key())
	}
}

func TestQueryKeyDistinguishesFields(t *testing.T) {
	base := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}
	variants := []Query{
		{Kind: QueryCity, City: "Paris", Units: UnitsMetric},
		{Kind: QueryCity, City: "London", Units: UnitsImperial},
		{Kind: QueryCoordinates, Lat: 51.5, Lon: -0.12, Units: UnitsMetric},
	}
	for _, v := range variants {
		if v.Key() == base.Key() {
			t.Errorf("query %+v should not share key %q with base", v, base.Key())
		}
	}
}

func TestQueryKeyCaseInsensitiveCity(t *testing.T) {
	a := Query{Kind: QueryCity, City: "London", Units: UnitsMetric}
	b := Query{Kind: QueryCity, City: "LONDON", Units: UnitsMetric}
	if a.Key() != b.Key() {
		t.Fatalf("city casing should not change the key: %q vs %q", a.Key(), b.Key())
	}
}

func TestQueryKeyCoordinateRounding(t *testing.T) {
	a := Query{Kind: QueryCoordinates, Lat: 51.50741, Lon: -0.12779, Units: UnitsMetric}
	b := Query{Kind: QueryCoordinates, Lat: 51.50739, Lon: -0.12781, Units: UnitsMetric}
	if a.Key() != b.Key() {
		t.Fatalf("coordinates within rounding precision should share a key: %q vs %q", a.Key(), b.Key())
	}
}
