package session

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"hydroqc/quality"
	"hydroqc/timeseries"
)

// CSV timestamp column, RFC 3339
type csvTime struct {
	time.Time
}

func (t *csvTime) UnmarshalCSV(s string) (err error) {
	t.Time, err = time.Parse(time.RFC3339, s)
	return err
}

func (t csvTime) MarshalCSV() (string, error) {
	return t.Format(time.RFC3339), nil
}

// Row of a dumped series file. An empty value column marks a missing sample.
type sampleRow struct {
	Time  csvTime  `csv:"time"`
	Value *float64 `csv:"value"`
}

// Row of an exported quality-code file
type qcRow struct {
	Time    csvTime `csv:"time"`
	Grade   int     `csv:"grade"`
	Code    string  `csv:"code"`
	Details string  `csv:"details"`
}

// ReadSeriesCSV loads a dumped series file into a Series
func ReadSeriesCSV(path string) (timeseries.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return timeseries.Series{}, err
	}
	defer file.Close()

	var rows []sampleRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return timeseries.Series{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	times := make([]time.Time, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		times[i] = row.Time.Time
		if row.Value != nil {
			values[i] = *row.Value
		} else {
			values[i] = timeseries.Missing
		}
	}

	s, err := timeseries.New(times, values)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteSeriesCSV dumps a series, missing samples as empty value cells
func WriteSeriesCSV(path string, s timeseries.Series) error {
	rows := make([]sampleRow, s.Len())
	for i := range rows {
		rows[i].Time = csvTime{s.Time(i)}
		if !s.MissingAt(i) {
			v := s.Value(i)
			rows[i].Value = &v
		}
	}
	return writeRows(path, rows)
}

// WriteQCCSV exports a quality-code series
func WriteQCCSV(path string, qc quality.QCSeries) error {
	rows := make([]qcRow, len(qc))
	for i, r := range qc {
		rows[i] = qcRow{Time: csvTime{r.Time}, Grade: r.Grade, Code: r.Code, Details: r.Details}
	}
	return writeRows(path, rows)
}

// ReadQCCSV loads a previously exported quality-code series
func ReadQCCSV(path string) (quality.QCSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []qcRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	qc := make(quality.QCSeries, len(rows))
	for i, row := range rows {
		qc[i] = quality.Record{Time: row.Time.Time, Grade: row.Grade, Code: row.Code, Details: row.Details}
	}
	return qc, nil
}

func writeRows[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.Marshal(rows, file)
}
