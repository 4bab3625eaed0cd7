package quality

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hydroqc/timeseries"
)

// Returned when the check series starts before or ends after the logged series
var ErrCheckOutOfRange = errors.New("check data out of range")

// Config drives one quality-code computation.
//
// The original tooling used a single gap_limit for both fields below,
// reading it as seconds in the check-matching step and as a sample count in
// the gap steps. They are kept separate here so the units cannot be mixed up.
type Config struct {
	// Maximum distance between a check reading and the nearest valid
	// logged sample before the comparison degrades to QCNoCheck
	CheckTolerance time.Duration
	// Gaps longer than this many samples are graded QCMissing
	GapLimit int
	// Site ceiling. No ceiling when nil.
	MaxQC *int
	// Staleness downgrade rules, applied in order
	Intervals []IntervalRule
	// Round downgrade due dates up to the next midnight
	DayEndRounding bool
}

// DefaultConfig returns the conventional settings: one hour of check
// tolerance, 12-sample gap limit, no ceiling, default inspection intervals,
// day-end rounding on.
func DefaultConfig() Config {
	return Config{
		CheckTolerance: time.Hour,
		GapLimit:       12,
		Intervals:      DefaultIntervals(),
		DayEndRounding: true,
	}
}

// Encode builds the complete quality-code series for a logged series and
// its check readings: check comparison grades, missing-data grades on long
// gaps, out-of-validation downgrades, and the site ceiling, in that order.
func Encode(base, check timeseries.Series, grader Grader, cfg Config) (QCSeries, error) {
	qc, err := checkGrades(base, check, grader, cfg.CheckTolerance)
	if err != nil {
		return nil, err
	}
	qc = insertMissingDataGrades(base, qc, cfg.GapLimit)
	qc = downgradeOutOfValidation(qc, check, cfg.Intervals, cfg.DayEndRounding)
	return Clamp(qc, cfg.MaxQC), nil
}

// checkGrades runs the comparison state machine over the check series in
// ascending time order and returns the base quality-code step function.
//
// The grade computed by comparing at check i is reassigned to the previous
// record's timestamp: a grade states confidence in the data since the
// previous check, and that confidence only exists once the next check has
// confirmed it. The very first comparison therefore lands on the logged
// series' start, and the record at the last check is forced to QCPending.
func checkGrades(base, check timeseries.Series, grader Grader, tolerance time.Duration) (QCSeries, error) {
	if base.Len() == 0 {
		return nil, fmt.Errorf("cannot quality-code an empty logged series")
	}

	if check.Len() == 0 {
		// Not fatal, but somebody should go find that check data
		slog.Warn("No check data, emitting a single ungraded record")
		return QCSeries{{Time: base.Start(), Grade: QCUnset}}, nil
	}

	if check.Start().Before(base.Start()) || check.End().After(base.End()) {
		return nil, fmt.Errorf(
			"%w: checks span [%s, %s], logged data spans [%s, %s]",
			ErrCheckOutOfRange,
			check.Start().Format(time.RFC3339), check.End().Format(time.RFC3339),
			base.Start().Format(time.RFC3339), base.End().Format(time.RFC3339),
		)
	}

	qc := make(QCSeries, 0, check.Len()+1)
	qc = append(qc, Record{Time: base.Start()})

	for i := 0; i < check.Len(); i++ {
		checkTime := check.Time(i)
		matchTime, err := base.NearestValid(checkTime)
		if err != nil {
			return nil, err
		}

		distance := checkTime.Sub(matchTime).Abs()
		rec := Record{Time: checkTime, Code: "CHK"}
		if distance >= tolerance {
			rec.Grade = QCNoCheck
			rec.Details = fmt.Sprintf(
				"No usable data within %s of check at %s (nearest valid sample at %s, %s away).",
				tolerance, checkTime.Format(time.RFC3339), matchTime.Format(time.RFC3339), distance,
			)
		} else {
			matchValue, _ := base.At(matchTime)
			rec.Grade = grader.Grade(matchValue, check.Value(i))
			rec.Details = fmt.Sprintf(
				"Check value at %s used to validate data value at %s.",
				checkTime.Format(time.RFC3339), matchTime.Format(time.RFC3339),
			)
		}
		// A check falling exactly on the series start overwrites the
		// placeholder instead of duplicating its timestamp
		if rec.Time.Equal(qc[len(qc)-1].Time) {
			qc[len(qc)-1] = rec
		} else {
			qc = append(qc, rec)
		}
	}

	// Shift every grade back onto the record that opens the interval it
	// certifies. The last record keeps its timestamp but becomes pending.
	for i := 0; i < len(qc)-1; i++ {
		qc[i].Grade = qc[i+1].Grade
		qc[i].Code = qc[i+1].Code
		qc[i].Details = qc[i+1].Details
	}
	last := &qc[len(qc)-1]
	last.Grade = QCPending
	last.Code = ""
	last.Details = ""

	return qc, nil
}

// insertMissingDataGrades folds the logged series' long gaps into the
// quality-code series: QCMissing at each gap start, no surviving records
// inside the gap, and the grade previously in force restored at the first
// valid sample after the gap.
func insertMissingDataGrades(base timeseries.Series, qc QCSeries, gapLimit int) QCSeries {
	for _, gap := range base.Gaps() {
		if gap.Length <= gapLimit {
			continue
		}

		startIdx := indexOf(base, gap.Start)
		endIdx := startIdx + gap.Length

		var gapEnd time.Time
		if endIdx < base.Len() {
			// First sample with real data again: restore the grade that was
			// on record before the outage
			gapEnd = base.Time(endIdx)
			if prev, ok := lastGradedAbove(qc, QCMissing, gapEnd); ok {
				qc = qc.upsert(Record{
					Time:  gapEnd,
					Grade: prev.Grade,
					Code:  prev.Code,
					Details: fmt.Sprintf(
						"End of gap. Returning to QC code assigned at %s.",
						prev.Time.Format(time.RFC3339),
					),
				})
			}
		} else {
			// Gap runs to the end of the series
			gapEnd = base.End()
		}

		// No grade change may survive strictly inside the gap
		qc = deleteBetween(qc, gap.Start, base.Time(endIdx-1))

		qc = qc.upsert(Record{
			Time:    gap.Start,
			Grade:   QCMissing,
			Code:    "GAP",
			Details: fmt.Sprintf("Missing data amounting to %s.", gapEnd.Sub(gap.Start)),
		})
	}
	return qc
}

func indexOf(s timeseries.Series, t time.Time) int {
	for i := 0; i < s.Len(); i++ {
		if s.Time(i).Equal(t) {
			return i
		}
	}
	return -1
}

// Last record at or before t whose grade exceeds floor
func lastGradedAbove(qc QCSeries, floor int, t time.Time) (Record, bool) {
	found := Record{}
	ok := false
	for _, r := range qc {
		if r.Time.After(t) {
			break
		}
		if r.Grade > floor {
			found, ok = r, true
		}
	}
	return found, ok
}

// Removes records with from < Time <= to
func deleteBetween(qc QCSeries, from, to time.Time) QCSeries {
	out := qc[:0]
	for _, r := range qc {
		if r.Time.After(from) && !r.Time.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
