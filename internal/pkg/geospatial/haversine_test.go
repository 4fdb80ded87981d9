package geospatial

import (
	"math"
	"testing"
)

func TestHaversine_IdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{28.6139, 77.2090},
		{-90, 180},
		{43.263, -2.935},
	}
	for _, p := range points {
		if d := Haversine(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Haversine(%v, %v, same) = %v, want exactly 0", p[0], p[1], d)
		}
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	d1 := Haversine(28.6139, 77.2090, 19.0760, 72.8777)
	d2 := Haversine(19.0760, 72.8777, 28.6139, 77.2090)
	if d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversine_OneDegreeLatitudeAtEquator(t *testing.T) {
	// One degree of latitude is about 111.2 km.
	d := Haversine(0, 0, 1, 0)
	if math.Abs(d-111.2) > 1.0 {
		t.Errorf("1 degree latitude = %v km, want 111.2 +/- 1", d)
	}
}

func TestHaversine_TriangleInequality(t *testing.T) {
	a := [2]float64{28.6139, 77.2090} // Delhi
	b := [2]float64{19.0760, 72.8777} // Mumbai
	c := [2]float64{23.0225, 72.5714} // Ahmedabad

	ab := Haversine(a[0], a[1], b[0], b[1])
	ac := Haversine(a[0], a[1], c[0], c[1])
	cb := Haversine(c[0], c[1], b[0], b[1])

	const eps = 1e-6
	if ab > ac+cb+eps {
		t.Errorf("triangle inequality violated: %v > %v + %v", ab, ac, cb)
	}
}

func TestHaversine_DelhiToMumbai(t *testing.T) {
	// Roughly 1150 km apart.
	d := Haversine(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1100 || d > 1200 {
		t.Errorf("Delhi-Mumbai = %v km, want around 1150", d)
	}
}

func TestHaversine_AlwaysFiniteNonNegative(t *testing.T) {
	coords := [][4]float64{
		{90, 0, -90, 0},    // pole to pole
		{0, 179, 0, -179},  // across the antimeridian
		{0, 0, 0, 180},     // antipodal on the equator
		{45, 45, -45, -135}, // antipodal pair
	}
	for _, c := range coords {
		d := Haversine(c[0], c[1], c[2], c[3])
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			t.Errorf("Haversine(%v) = %v, want finite non-negative", c, d)
		}
	}
}
