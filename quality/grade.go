// Package quality assigns and maintains quality codes on logged
// environmental series by comparing them against sparse check readings.
package quality

import (
	"sort"
	"time"
)

// NEMS quality codes. 400 and above come from automated comparison
// against check readings, the rest are assigned by data condition.
const (
	// The most recent period has not been confirmed by a later check yet
	QCPending = 0
	// Missing data
	QCMissing = 100
	// No check reading close enough to the logged data
	QCNoCheck = 200
	// Reserved for manual assignment
	QCManual    = 300
	QCPoor      = 400
	QCGood      = 500
	QCExcellent = 600
)

// Placeholder grade for records emitted before anything could be graded
const QCUnset = -1

// Record is one row of the quality-code series: a grade change taking
// effect at Time and holding until the next record.
type Record struct {
	Time time.Time
	// One of the QC constants above
	Grade int
	// Short reason tag: "CHK", "GAP", "OOV", possibly suffixed ", LIM"
	Code string
	// Free-text explanation of how the grade was reached
	Details string
}

// Graded reports whether the record carries an actual grade
func (r Record) Graded() bool {
	return r.Grade >= 0
}

// QCSeries is the ordered sequence of quality records, interpreted as a
// right-open step function over time. Methods keep it sorted by timestamp.
type QCSeries []Record

// At returns the grade in force at t: the grade of the last record whose
// timestamp is at or before t. QCUnset if t precedes every record.
func (q QCSeries) At(t time.Time) int {
	grade := QCUnset
	for _, r := range q {
		if r.Time.After(t) {
			break
		}
		grade = r.Grade
	}
	return grade
}

func (q QCSeries) sort() {
	sort.SliceStable(q, func(i, j int) bool {
		return q[i].Time.Before(q[j].Time)
	})
}

// Inserts the record, replacing any existing record at the same timestamp
func (q QCSeries) upsert(r Record) QCSeries {
	for i := range q {
		if q[i].Time.Equal(r.Time) {
			q[i] = r
			return q
		}
	}
	q = append(q, r)
	q.sort()
	return q
}

// Forces the last record to QCPending, preserving the invariant that the
// period after the most recent change is never confirmed
func (q QCSeries) forcePendingTail() {
	if len(q) > 0 {
		q[len(q)-1].Grade = QCPending
	}
}
