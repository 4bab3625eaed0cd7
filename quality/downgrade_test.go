package quality

import (
	"testing"
	"time"

	"github.com/rickb777/period"
)

// Two checks five months apart with the default rules: the two- and
// four-month downgrades fire, the six-month one does not
func TestDowngradeOutOfValidation(t *testing.T) {
	start := time.Date(2023, 1, 9, 12, 0, 0, 0, time.UTC)
	// Daily samples spanning both checks
	base := testSeries(t, start, 24*time.Hour, constant(170, 10.0))

	c1 := start.Add(24 * time.Hour) // 2023-01-10 12:00
	c2 := c1.Add(153 * 24 * time.Hour) // five months and change later
	check := checkSeries(t, map[time.Time]float64{c1: 10.0, c2: 10.0})

	cfg := testConfig()
	qc, err := Encode(base, check, flatModel, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Due dates are rounded up to the next midnight
	twoMonths := time.Date(2023, 3, 11, 0, 0, 0, 0, time.UTC)
	fourMonths := time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC)

	type expectation struct {
		tag   string
		at    time.Time
		grade int
	}

	for _, e := range []expectation{
		{"QC500 after two months", twoMonths, QCGood},
		{"QC400 after four months", fourMonths, QCPoor},
	} {
		t.Log(e.tag)
		found := false
		for _, r := range qc {
			if r.Time.Equal(e.at) {
				found = true
				if r.Grade != e.grade || r.Code != "OOV" {
					t.Errorf("Got %+v, wanted QC%v 'OOV'", r, e.grade)
				}
			}
		}
		if !found {
			t.Errorf("No record at %v", e.at)
		}
	}

	// Six months were never exceeded before the next check
	for _, r := range qc {
		if r.Code == "OOV" && r.Grade == QCNoCheck {
			t.Errorf("Unexpected six-month downgrade at %v", r.Time)
		}
	}

	if qc[len(qc)-1].Grade != QCPending {
		t.Error("Tail must stay pending after downgrade passes")
	}
}

// A stretch already at or below the rule's grade is not downgraded further
func TestDowngradeSkipsLowGrades(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	c1 := start
	c2 := start.Add(100 * 24 * time.Hour)
	check := checkSeries(t, map[time.Time]float64{c1: 10.0, c2: 10.0})

	qc := QCSeries{
		{Time: c1, Grade: QCNoCheck},
		{Time: c2, Grade: QCPending},
	}

	rule := IntervalRule{Grace: period.MustParse("P2M"), Grade: QCGood}
	got := downgradeSingle(qc, check, rule, true)

	for _, r := range got {
		if r.Code == "OOV" {
			t.Errorf("QC200 stretch was downgraded to QC%v", r.Grade)
		}
	}
}

func TestDowngradeWithinGrace(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	c1 := start
	c2 := start.Add(30 * 24 * time.Hour) // well inside two months
	check := checkSeries(t, map[time.Time]float64{c1: 10.0, c2: 10.0})

	qc := QCSeries{
		{Time: c1, Grade: QCExcellent},
		{Time: c2, Grade: QCPending},
	}

	got := downgradeOutOfValidation(qc, check, DefaultIntervals(), true)
	if len(got) != 2 {
		t.Errorf("Got %v records, wanted the original 2", len(got))
	}
}

func TestCeilDay(t *testing.T) {
	type testCase struct {
		tag      string
		in       time.Time
		expected time.Time
	}

	cases := []testCase{
		{
			"mid-day rounds up",
			time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC),
			time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			"exact midnight stays",
			time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"one second past midnight rounds up",
			time.Date(2023, 5, 10, 0, 0, 1, 0, time.UTC),
			time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		t.Log(c.tag)
		if got := ceilDay(c.in); !got.Equal(c.expected) {
			t.Errorf("Got %v, wanted %v", got, c.expected)
		}
	}
}
