package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", 12.9716, 77.5946, 12.9716, 77.5946, 0, 0.01},
		// ~1 degree of latitude is ~111.2 km
		{"one degree latitude", 12.0, 77.0, 13.0, 77.0, 111195, 200},
		// Bangalore city center to airport, known to be roughly 31.8 km
		{"bangalore to airport", 12.9716, 77.5946, 13.1986, 77.7066, 28000, 3000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.want) > c.tolerance {
				t.Errorf("HaversineDistance() = %.1f, want %.1f ± %.1f", got, c.want, c.tolerance)
			}
		})
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	d1 := HaversineDistance(12.9716, 77.5946, 13.1986, 77.7066)
	d2 := HaversineDistance(13.1986, 77.7066, 12.9716, 77.5946)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}
