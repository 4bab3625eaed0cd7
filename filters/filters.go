// Package filters pre-cleans logged series before quality coding.
package filters

import (
	"math"

	"hydroqc/timeseries"
)

// Clip marks every sample outside [low, high] as missing.
// In-range values pass through unchanged.
func Clip(s timeseries.Series, low, high float64) timeseries.Series {
	values := s.Values()
	for i, v := range values {
		if v < low || v > high {
			values[i] = timeseries.Missing
		}
	}
	return s.ReplaceValues(values)
}

// SmoothedReference builds a reference curve by averaging a forward
// exponentially weighted moving mean with a backward one (the series
// smoothed in reverse time order, then reversed back). The symmetric
// construction avoids the lag a single-direction mean shows at spike edges.
func SmoothedReference(s timeseries.Series, span int) timeseries.Series {
	fwd := ewm(s.Values(), span)

	bwd := s.Values()
	reverse(bwd)
	bwd = ewm(bwd, span)
	reverse(bwd)

	out := make([]float64, len(fwd))
	for i := range out {
		switch {
		case timeseries.IsMissing(fwd[i]):
			out[i] = bwd[i]
		case timeseries.IsMissing(bwd[i]):
			out[i] = fwd[i]
		default:
			out[i] = (fwd[i] + bwd[i]) / 2
		}
	}
	return s.ReplaceValues(out)
}

// RemoveOutliers marks as missing every sample deviating from the smoothed
// reference by more than delta. Samples already missing stay missing.
func RemoveOutliers(s timeseries.Series, span int, delta float64) timeseries.Series {
	reference := SmoothedReference(s, span)

	values := s.Values()
	for i, v := range values {
		if math.Abs(v-reference.Value(i)) > delta {
			values[i] = timeseries.Missing
		}
	}
	return s.ReplaceValues(values)
}

// RemoveSpikes clips the series to [low, high] and then removes outliers
// against the smoothed reference. No interpolation is performed, the
// resulting missing samples are left for downstream gap handling.
func RemoveSpikes(s timeseries.Series, span int, low, high, delta float64) timeseries.Series {
	return RemoveOutliers(Clip(s, low, high), span, delta)
}

// Exponentially weighted moving mean over the value column.
// Weights decay by (1 - 2/(span+1)) per sample and keep decaying across
// missing samples, which therefore lower the influence of older values
// without contributing anything themselves.
func ewm(values []float64, span int) []float64 {
	decay := 1 - 2/(float64(span)+1)

	out := make([]float64, len(values))
	var num, den float64
	for i, v := range values {
		num *= decay
		den *= decay
		if !timeseries.IsMissing(v) {
			num += v
			den += 1
		}
		if den > 0 {
			out[i] = num / den
		} else {
			out[i] = timeseries.Missing
		}
	}
	return out
}

func reverse(values []float64) {
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
}
