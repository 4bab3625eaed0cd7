// Package catalog maps measurement names to their configured grading models.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"hydroqc/quality"
)

// Returned when a measurement name has no configured grading model
var ErrNotFound = errors.New("measurement not found in the catalog")

// Rows of the flat-model config file
type flatRow struct {
	Name       string  `csv:"name"`
	QC500Limit float64 `csv:"qc_500_limit"`
	QC600Limit float64 `csv:"qc_600_limit"`
}

// Rows of the two-tier config file
type twoTierRow struct {
	Name             string  `csv:"name"`
	QC500Limit       float64 `csv:"qc_500_limit"`
	QC600Limit       float64 `csv:"qc_600_limit"`
	QC500Percent     float64 `csv:"qc_500_percent"`
	QC600Percent     float64 `csv:"qc_600_percent"`
	PercentThreshold float64 `csv:"percent_threshold"`
}

// Catalog holds every configured grading model keyed by measurement name
type Catalog struct {
	models map[string]quality.Grader
}

// Load reads the flat and two-tier config files. Either path may be empty
// if a site uses only one kind of model.
func Load(flatPath, twoTierPath string) (*Catalog, error) {
	c := &Catalog{models: make(map[string]quality.Grader)}

	if flatPath != "" {
		rows, err := readRows[flatRow](flatPath)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			c.models[row.Name] = quality.FlatModel{
				Name:       row.Name,
				QC500Limit: row.QC500Limit,
				QC600Limit: row.QC600Limit,
			}
		}
	}

	if twoTierPath != "" {
		rows, err := readRows[twoTierRow](twoTierPath)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			c.models[row.Name] = quality.TwoTierModel{
				Name:             row.Name,
				QC500Limit:       row.QC500Limit,
				QC600Limit:       row.QC600Limit,
				QC500Percent:     row.QC500Percent,
				QC600Percent:     row.QC600Percent,
				PercentThreshold: row.PercentThreshold,
			}
		}
	}

	return c, nil
}

// Lookup fails with ErrNotFound if the measurement is unconfigured
func (c *Catalog) Lookup(name string) (quality.Grader, error) {
	model, ok := c.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return model, nil
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	return names
}

func readRows[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}
