package quality

import "math"

// Grader turns a (logged value, check value) pair into a discrete grade.
// Implementations are immutable configuration values.
type Grader interface {
	// Grade returns one of QCPoor, QCGood, QCExcellent.
	// NaN on either side always grades QCPoor.
	Grade(base, check float64) int
}

// FlatModel grades on the magnitude of the difference alone.
// QC600Limit < QC500Limit by construction: a smaller difference
// means a better grade.
type FlatModel struct {
	Name string
	// Threshold between QC 400 and QC 500
	QC500Limit float64
	// Threshold between QC 500 and QC 600
	QC600Limit float64
}

func (m FlatModel) Grade(base, check float64) int {
	return gradeDiff(math.Abs(base-check), m.QC500Limit, m.QC600Limit)
}

// TwoTierModel grades like FlatModel while the logged value stays below
// PercentThreshold, and on percentage difference above it. Used for
// standards such as water level where the sensible error is absolute at
// low readings and relative at high ones. The tier is chosen by the
// magnitude of the logged value, not of the difference.
type TwoTierModel struct {
	Name       string
	QC500Limit float64
	QC600Limit float64
	// Thresholds on |base/check - 1| * 100
	QC500Percent float64
	QC600Percent float64
	// Logged value at which grading switches from flat to percentage
	PercentThreshold float64
}

func (m TwoTierModel) Grade(base, check float64) int {
	if base < m.PercentThreshold {
		return gradeDiff(math.Abs(base-check), m.QC500Limit, m.QC600Limit)
	}
	return gradeDiff(math.Abs(base/check-1)*100, m.QC500Percent, m.QC600Percent)
}

// NaN differences fail both comparisons and fall through to QCPoor
func gradeDiff(diff, limit500, limit600 float64) int {
	switch {
	case diff < limit600:
		return QCExcellent
	case diff < limit500:
		return QCGood
	default:
		return QCPoor
	}
}
