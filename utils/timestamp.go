package utils

import (
	"fmt"
	"time"
)

// Date-only timestamp used for --from/--to flags
type Timestamp struct {
	t time.Time
}

func (ts *Timestamp) UnmarshalText(b []byte) error {
	t, err := time.Parse(time.DateOnly, string(b))
	if err != nil {
		return fmt.Errorf("Only the date-only format (\"YYYY-MM-DD\") is allowed. Got %s", b)
	}
	ts.t = t
	return nil
}

func (ts *Timestamp) Inner() *time.Time {
	if ts == nil {
		return nil
	}
	return &ts.t
}
