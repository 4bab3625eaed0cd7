package timeseries

import (
	"fmt"
	"time"
)

// Nearest returns the sample timestamp closest to t.
// Fails with ErrOutOfRange if t falls outside the series span.
// When t is exactly halfway between two samples the later one wins.
func (s Series) Nearest(t time.Time) (time.Time, error) {
	if err := s.checkSpan(t); err != nil {
		return time.Time{}, err
	}
	i, ok := s.search(t)
	if ok {
		return s.times[i], nil
	}
	// search returned the insertion point, so the candidates are i-1 and i
	return closer(s.times[i-1], s.times[i], t), nil
}

// NearestValid is like Nearest but searches only among non-missing samples.
// The span check still uses the full series, matching the check-data range
// validation done upstream. Fails with ErrOutOfRange if every sample is missing.
func (s Series) NearestValid(t time.Time) (time.Time, error) {
	if err := s.checkSpan(t); err != nil {
		return time.Time{}, err
	}

	best := time.Time{}
	found := false
	for i := range s.values {
		if s.MissingAt(i) {
			continue
		}
		if !found {
			best, found = s.times[i], true
			continue
		}
		best = closer(best, s.times[i], t)
		// Samples are chronological: once past t the distance only grows
		if s.times[i].After(t) {
			break
		}
	}
	if !found {
		return time.Time{}, fmt.Errorf("%w: series has no valid samples", ErrOutOfRange)
	}
	return best, nil
}

func (s Series) checkSpan(t time.Time) error {
	if len(s.times) == 0 || t.Before(s.times[0]) || t.After(s.times[len(s.times)-1]) {
		return fmt.Errorf(
			"%w: %s outside [%s, %s]",
			ErrOutOfRange, t.Format(time.RFC3339),
			s.Start().Format(time.RFC3339), s.End().Format(time.RFC3339),
		)
	}
	return nil
}

// Picks whichever of a (earlier) and b (later) lies closest to t, ties to b
func closer(a, b, t time.Time) time.Time {
	da := t.Sub(a)
	if da < 0 {
		da = -da
	}
	db := b.Sub(t)
	if db < 0 {
		db = -db
	}
	if da < db {
		return a
	}
	return b
}
