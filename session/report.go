package session

import (
	"fmt"
	"strings"

	"hydroqc/quality"
	"hydroqc/timeseries"
)

type ReportCmd struct {
	CleanFile string `arg:"positional,required" help:"cleaned series file"`
	QCFile    string `arg:"positional,required" help:"quality-code series file"`
}

func (ReportCmd) Description() string {
	return `Prints a coverage breakdown of a processed site: how much data is missing
and how much time each quality code covers.`
}

func (cmd *ReportCmd) Execute() {
	logged, err := ReadSeriesCSV(cmd.CleanFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	qc, err := ReadQCCSV(cmd.QCFile)
	if err != nil {
		fmt.Println(err)
		return
	}

	if logged.Len() == 0 {
		fmt.Println("No data to report on")
		return
	}

	fmt.Printf(
		"Time examined is %s from %s to %s\n",
		logged.End().Sub(logged.Start()), logged.Start(), logged.End(),
	)

	missing := 0
	for i := 0; i < logged.Len(); i++ {
		if logged.MissingAt(i) {
			missing++
		}
	}
	fmt.Printf(
		"Missing %d of %d samples, that's %.2f%%\n",
		missing, logged.Len(), float64(missing)/float64(logged.Len())*100,
	)

	fmt.Println(strings.Repeat("- ", 40))

	workable := logged.Len() - missing
	for _, grade := range quality.AllGrades {
		bucket := quality.MeetsGrade(logged, qc, grade)
		valid := countValid(bucket)
		if bucket.Len() == 0 {
			continue
		}
		fmt.Printf(
			"QC%d covers %.2f%% of the period and %.2f%% of the workable data\n",
			grade,
			float64(bucket.Len())/float64(logged.Len())*100,
			percentOf(valid, workable),
		)
	}
}

func countValid(s timeseries.Series) int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if !s.MissingAt(i) {
			n++
		}
	}
	return n
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
