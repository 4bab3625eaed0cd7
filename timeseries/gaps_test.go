package timeseries

import (
	"testing"
	"time"
)

func valuesWithGaps(missing ...int) []float64 {
	values := make([]float64, 10)
	for _, i := range missing {
		values[i] = Missing
	}
	return values
}

func TestGaps(t *testing.T) {
	type testCase struct {
		tag      string
		values   []float64
		expected []Gap
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(i int) time.Time { return start.Add(time.Duration(i) * time.Minute) }

	cases := []testCase{
		{"no gaps", valuesWithGaps(), nil},
		{"single mid gap", valuesWithGaps(3, 4, 5), []Gap{{at(3), 3, true}}},
		{"gap at series start", valuesWithGaps(0, 1), []Gap{{at(0), 2, true}}},
		{"gap at series end", valuesWithGaps(8, 9), []Gap{{at(8), 2, true}}},
		{"several gaps", valuesWithGaps(0, 2, 3, 9), []Gap{{at(0), 1, true}, {at(2), 2, true}, {at(9), 1, true}}},
	}

	for _, c := range cases {
		t.Log(c.tag)
		s := minuteSeries(t, start, time.Minute, c.values)
		got := s.Gaps()
		if len(got) != len(c.expected) {
			t.Errorf("Got %v gaps, wanted %v", len(got), len(c.expected))
			continue
		}
		for i := range got {
			if !got[i].Start.Equal(c.expected[i].Start) || got[i].Length != c.expected[i].Length || !got[i].Strict {
				t.Errorf("Gap %v: got %+v, wanted %+v", i, got[i], c.expected[i])
			}
		}
	}
}

// The gaps must be ordered, non-overlapping, and cover exactly the missing samples
func TestGapsPartitionMissingSamples(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := minuteSeries(t, start, time.Minute, valuesWithGaps(0, 1, 4, 7, 8, 9))

	covered := make(map[time.Time]bool)
	var lastEnd time.Time
	for _, gap := range s.Gaps() {
		if !gap.Start.After(lastEnd) && !lastEnd.IsZero() {
			t.Error("Gaps overlap or are out of order")
		}
		for i := 0; i < gap.Length; i++ {
			covered[gap.Start.Add(time.Duration(i)*time.Minute)] = true
		}
		lastEnd = gap.Start.Add(time.Duration(gap.Length-1) * time.Minute)
	}

	for i := 0; i < s.Len(); i++ {
		if s.MissingAt(i) != covered[s.Time(i)] {
			t.Errorf("Sample %v: missing=%v but covered=%v", i, s.MissingAt(i), covered[s.Time(i)])
		}
	}
}

func TestCloseSmallGaps(t *testing.T) {
	type testCase struct {
		tag         string
		values      []float64
		limit       int
		expectedLen int
	}

	cases := []testCase{
		{"gap within limit is removed", valuesWithGaps(3, 4), 2, 8},
		{"gap over limit is kept", valuesWithGaps(3, 4, 5), 2, 10},
		{"mixed gaps", valuesWithGaps(0, 3, 4, 5), 1, 9},
		{"no gaps", valuesWithGaps(), 5, 10},
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range cases {
		t.Log(c.tag)
		s := minuteSeries(t, start, time.Minute, c.values)
		got := s.CloseSmallGaps(c.limit)
		if got.Len() != c.expectedLen {
			t.Errorf("Got %v samples, wanted %v", got.Len(), c.expectedLen)
		}
		// Removed rows must all have been missing, kept gaps stay missing
		for i := 0; i < got.Len(); i++ {
			if got.MissingAt(i) {
				continue
			}
			if v, ok := s.At(got.Time(i)); !ok || v != got.Value(i) {
				t.Errorf("Sample at %v changed value", got.Time(i))
			}
		}
	}
}

// A 20-sample outage with a 10-sample limit must survive gap closure untouched
func TestCloseSmallGapsLeavesLongOutage(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 60)
	for i := 20; i < 40; i++ {
		values[i] = Missing
	}
	s := minuteSeries(t, start, 15*time.Minute, values)

	got := s.CloseSmallGaps(10)
	if got.Len() != s.Len() {
		t.Errorf("Got %v samples, wanted %v", got.Len(), s.Len())
	}
	gaps := got.Gaps()
	if len(gaps) != 1 || gaps[0].Length != 20 {
		t.Errorf("Got gaps %+v, wanted a single 20-sample gap", gaps)
	}
}
