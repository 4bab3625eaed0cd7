package quality

import (
	"hydroqc/timeseries"
)

// All codes a quality series can carry, in ascending order
var AllGrades = []int{QCPending, QCMissing, QCNoCheck, QCManual, QCPoor, QCGood, QCExcellent}

// Filter returns the base samples whose governing grade satisfies keep.
// The governing grade of a sample is the quality series' step-function
// value at the sample's timestamp.
func Filter(base timeseries.Series, qc QCSeries, keep func(grade int) bool) timeseries.Series {
	times := base.Times()
	values := base.Values()

	outTimes := times[:0]
	outValues := values[:0]
	for i := range times {
		if !keep(qc.At(times[i])) {
			continue
		}
		outTimes = append(outTimes, times[i])
		outValues = append(outValues, values[i])
	}

	out, _ := timeseries.New(outTimes, outValues)
	return out
}

// MeetsGrade returns the base samples governed by exactly the target grade
func MeetsGrade(base timeseries.Series, qc QCSeries, target int) timeseries.Series {
	return Filter(base, qc, func(grade int) bool { return grade == target })
}

// Split buckets the base series by governing grade, one (possibly empty)
// series per known code. Used by coverage reporting.
func Split(base timeseries.Series, qc QCSeries) map[int]timeseries.Series {
	out := make(map[int]timeseries.Series, len(AllGrades))
	for _, grade := range AllGrades {
		out[grade] = MeetsGrade(base, qc, grade)
	}
	return out
}
