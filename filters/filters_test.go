package filters

import (
	"math"
	"testing"
	"time"

	"hydroqc/timeseries"
)

func series(t *testing.T, values []float64) timeseries.Series {
	t.Helper()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(values))
	for i := range values {
		times[i] = start.Add(time.Duration(i) * 15 * time.Minute)
	}
	s, err := timeseries.New(times, values)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestClip(t *testing.T) {
	type testCase struct {
		tag     string
		value   float64
		missing bool
	}

	cases := []testCase{
		{"inside range", 5, false},
		{"at low bound", 0, false},
		{"at high bound", 10, false},
		{"below range", -0.1, true},
		{"above range", 10.1, true},
	}

	for _, c := range cases {
		t.Log(c.tag)
		s := series(t, []float64{c.value})
		got := Clip(s, 0, 10)
		if got.MissingAt(0) != c.missing {
			t.Errorf("Got missing=%v, wanted %v", got.MissingAt(0), c.missing)
		}
		if !c.missing && got.Value(0) != c.value {
			t.Errorf("In-range value changed from %v to %v", c.value, got.Value(0))
		}
	}
}

func TestSmoothedReferenceConstantSeries(t *testing.T) {
	values := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	got := SmoothedReference(series(t, values), 4)

	for i := range values {
		if math.Abs(got.Value(i)-5) > 1e-12 {
			t.Errorf("Sample %v: got %v, wanted 5", i, got.Value(i))
		}
	}
}

// The forward-backward construction is symmetric: reversing the input
// reverses the output instead of shifting it
func TestSmoothedReferenceSymmetry(t *testing.T) {
	values := []float64{1, 2, 3, 10, 4, 2, 2}
	reversed := []float64{2, 2, 4, 10, 3, 2, 1}

	a := SmoothedReference(series(t, values), 3)
	b := SmoothedReference(series(t, reversed), 3)

	n := len(values)
	for i := 0; i < n; i++ {
		if math.Abs(a.Value(i)-b.Value(n-1-i)) > 1e-9 {
			t.Errorf("Position %v: %v vs mirrored %v", i, a.Value(i), b.Value(n-1-i))
		}
	}
}

func TestRemoveOutliers(t *testing.T) {
	// A lone spike in an otherwise flat series
	values := []float64{10, 10, 10, 10, 100, 10, 10, 10, 10}
	got := RemoveOutliers(series(t, values), 4, 20)

	if !got.MissingAt(4) {
		t.Error("Spike survived outlier removal")
	}
	for i := range values {
		if i != 4 && got.MissingAt(i) {
			t.Errorf("Flat sample %v was removed", i)
		}
	}
}

func TestRemoveOutliersKeepsMissing(t *testing.T) {
	values := []float64{10, timeseries.Missing, 10, 10}
	got := RemoveOutliers(series(t, values), 4, 20)

	if !got.MissingAt(1) {
		t.Error("Missing sample must stay missing")
	}
}

func TestRemoveSpikes(t *testing.T) {
	// Sample 2 is out of clip range, sample 5 deviates from the reference
	values := []float64{10, 10, 500, 10, 10, 80, 10, 10, 10}
	got := RemoveSpikes(series(t, values), 4, 0, 100, 30)

	for _, i := range []int{2, 5} {
		if !got.MissingAt(i) {
			t.Errorf("Sample %v should have been removed", i)
		}
	}
	for _, i := range []int{0, 1, 3, 4, 6, 7, 8} {
		if got.MissingAt(i) {
			t.Errorf("Sample %v should have survived", i)
		}
	}
}
