package timeseries

import (
	"fmt"
	"math"
	"time"
)

// Merge combines two series holding partial views of the same dataset.
// Timestamps present in both must agree within tolerance, otherwise the
// merge fails; a valid value always wins over a missing one.
func Merge(a, b Series, tolerance float64) (Series, error) {
	times := make([]time.Time, 0, a.Len()+b.Len())
	values := make([]float64, 0, a.Len()+b.Len())

	i, j := 0, 0
	for i < a.Len() || j < b.Len() {
		switch {
		case j == b.Len() || (i < a.Len() && a.times[i].Before(b.times[j])):
			times = append(times, a.times[i])
			values = append(values, a.values[i])
			i++
		case i == a.Len() || b.times[j].Before(a.times[i]):
			times = append(times, b.times[j])
			values = append(values, b.values[j])
			j++
		default:
			// Shared timestamp
			av, bv := a.values[i], b.values[j]
			v, err := reconcile(av, bv, tolerance)
			if err != nil {
				return Series{}, fmt.Errorf("at %s: %w", a.times[i].Format(time.RFC3339), err)
			}
			times = append(times, a.times[i])
			values = append(values, v)
			i++
			j++
		}
	}
	return Series{times: times, values: values}, nil
}

func reconcile(a, b, tolerance float64) (float64, error) {
	switch {
	case IsMissing(a):
		return b, nil
	case IsMissing(b):
		return a, nil
	case math.Abs(a-b) <= tolerance:
		return a, nil
	default:
		return Missing, fmt.Errorf("conflicting values %v and %v", a, b)
	}
}
