package timeseries

import "time"

// Gap is a maximal run of consecutive missing samples.
// Gaps are derived from the current series on demand, never stored.
type Gap struct {
	Start time.Time
	// Number of consecutive missing samples
	Length int
	// Always true: a gap never contains a valid sample
	Strict bool
}

// Scans the series for maximal runs of missing samples, in start-time order.
// A series that is missing at its very first or last sample still yields a gap.
func (s Series) Gaps() []Gap {
	var gaps []Gap
	for i := 0; i < len(s.values); {
		if !s.MissingAt(i) {
			i++
			continue
		}
		j := i
		for j < len(s.values) && s.MissingAt(j) {
			j++
		}
		gaps = append(gaps, Gap{Start: s.times[i], Length: j - i, Strict: true})
		i = j
	}
	return gaps
}

// Removes every gap of `limit` samples or less from the series entirely.
// The missing rows are dropped, not interpolated, so the output is shorter
// than the input whenever a gap closes. Callers that need fixed-frequency
// output have to re-densify afterwards. Longer gaps are left untouched.
func (s Series) CloseSmallGaps(limit int) Series {
	drop := make([]bool, len(s.values))
	for _, gap := range s.Gaps() {
		if gap.Length > limit {
			continue
		}
		start, _ := s.search(gap.Start)
		for i := start; i < start+gap.Length; i++ {
			drop[i] = true
		}
	}

	times := make([]time.Time, 0, len(s.times))
	values := make([]float64, 0, len(s.values))
	for i := range s.values {
		if drop[i] {
			continue
		}
		times = append(times, s.times[i])
		values = append(values, s.values[i])
	}
	return Series{times: times, values: values}
}
