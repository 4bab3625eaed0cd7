package quality

import (
	"fmt"
	"time"

	"github.com/rickb777/period"

	"hydroqc/timeseries"
)

// IntervalRule downgrades any stretch where more than Grace has elapsed
// since the last check reading.
type IntervalRule struct {
	// Calendar-aware grace period between site inspections
	Grace period.Period
	// Grade the stretch is downgraded to once overdue
	Grade int
}

// DefaultIntervals returns the conventional inspection schedule:
// two months to keep QC600, four to keep QC500, six before data is
// considered unchecked.
func DefaultIntervals() []IntervalRule {
	return []IntervalRule{
		{Grace: period.MustParse("P2M"), Grade: QCGood},
		{Grace: period.MustParse("P4M"), Grade: QCPoor},
		{Grace: period.MustParse("P6M"), Grade: QCNoCheck},
	}
}

// downgradeOutOfValidation applies each rule independently, in the order
// supplied. Later rules can add further downgrade records but never retract
// earlier ones.
func downgradeOutOfValidation(qc QCSeries, check timeseries.Series, rules []IntervalRule, dayEndRounding bool) QCSeries {
	for _, rule := range rules {
		qc = downgradeSingle(qc, check, rule, dayEndRounding)
	}
	return qc
}

// downgradeSingle scans consecutive check pairs: when the next check comes
// later than the previous check plus the grace period, and the grade in
// force at the previous check exceeds the rule's grade, the stretch from the
// due date onwards is downgraded until that next check.
func downgradeSingle(qc QCSeries, check timeseries.Series, rule IntervalRule, dayEndRounding bool) QCSeries {
	if len(qc) == 0 {
		return qc
	}

	for i := 0; i < check.Len()-1; i++ {
		checkTime := check.Time(i)

		due, _ := rule.Grace.AddTo(checkTime)
		if dayEndRounding {
			due = ceilDay(due)
		}

		if !due.Before(check.Time(i + 1)) {
			continue
		}
		// No point downgrading something already at or below that level
		if qc.At(checkTime) <= rule.Grade {
			continue
		}

		qc = qc.upsert(Record{
			Time:  due,
			Grade: rule.Grade,
			Code:  "OOV",
			Details: fmt.Sprintf(
				"Site inspection overdue. Last inspection at %s. Data downgraded to QC%d until next inspection.",
				checkTime.Format(time.RFC3339), rule.Grade,
			),
		})
	}

	qc.forcePendingTail()
	return qc
}

// Rounds t up to the next midnight. Exact midnights stay put.
func ceilDay(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if t.Equal(midnight) {
		return t
	}
	return midnight.AddDate(0, 0, 1)
}
