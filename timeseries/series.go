package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Samples with no valid reading carry NaN, same as the special values
// that stand for null observations in the source loggers.
var Missing = math.NaN()

func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

var (
	// Returned when a queried timestamp falls outside the series span
	ErrOutOfRange = errors.New("timestamp not within series range")
	// Returned when the input index is not strictly chronological
	ErrNotChronological = errors.New("series index is not strictly chronological")
)

// Series is an ordered mapping from timestamp to numeric value.
// Timestamps are strictly increasing with no duplicates, values may be Missing.
// All methods return new values and never mutate the receiver's backing arrays.
type Series struct {
	times  []time.Time
	values []float64
}

// Builds a Series after validating that the index is strictly increasing
// and matches the value column in length
func New(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf(
			"index and value columns differ in length (%v vs %v)", len(times), len(values),
		)
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return Series{}, fmt.Errorf(
				"%w: %s does not come after %s",
				ErrNotChronological, times[i].Format(time.RFC3339), times[i-1].Format(time.RFC3339),
			)
		}
	}
	return Series{times: times, values: values}, nil
}

func (s Series) Len() int {
	return len(s.times)
}

func (s Series) Time(i int) time.Time {
	return s.times[i]
}

func (s Series) Value(i int) float64 {
	return s.values[i]
}

func (s Series) MissingAt(i int) bool {
	return IsMissing(s.values[i])
}

// First timestamp of the series. The zero time if the series is empty.
func (s Series) Start() time.Time {
	if len(s.times) == 0 {
		return time.Time{}
	}
	return s.times[0]
}

// Last timestamp of the series. The zero time if the series is empty.
func (s Series) End() time.Time {
	if len(s.times) == 0 {
		return time.Time{}
	}
	return s.times[len(s.times)-1]
}

// Copy of the time column
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s.times))
	copy(out, s.times)
	return out
}

// Copy of the value column
func (s Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Returns a new series with the same index and the given value column.
// Panics on length mismatch, since that is always a programming error.
func (s Series) ReplaceValues(values []float64) Series {
	if len(values) != len(s.times) {
		panic("replacement value column does not match series length")
	}
	return Series{times: s.times, values: values}
}

// Window returns the sub-series of samples with from <= t <= to.
// Nil bounds are open.
func (s Series) Window(from, to *time.Time) Series {
	lo := 0
	if from != nil {
		lo, _ = s.search(*from)
	}
	hi := len(s.times)
	if to != nil {
		i, ok := s.search(*to)
		if ok {
			i++
		}
		hi = i
	}
	return Series{times: s.times[lo:hi], values: s.values[lo:hi]}
}

// Exact lookup. The second return is false if t is not a sample timestamp.
func (s Series) At(t time.Time) (float64, bool) {
	i, ok := s.search(t)
	if !ok {
		return Missing, false
	}
	return s.values[i], true
}

// Binary search for t, returning its index and whether it was found exactly.
// When not found, the index is where t would be inserted.
func (s Series) search(t time.Time) (int, bool) {
	lo, hi := 0, len(s.times)
	for lo < hi {
		mid := (lo + hi) / 2
		if s.times[mid].Before(t) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.times) && s.times[lo].Equal(t) {
		return lo, true
	}
	return lo, false
}
