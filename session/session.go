// Package session wraps the pure engine packages in a per-site processing
// session and exposes the CLI verbs built on top of it.
package session

import (
	"log/slog"

	"hydroqc/filters"
	"hydroqc/quality"
	"hydroqc/timeseries"
)

// Session holds the state of one site/measurement processing run. Every
// step calls a pure engine function and rebinds the relevant field, so the
// engine itself never mutates shared state.
type Session struct {
	Site        string
	Measurement string

	Grader quality.Grader
	Config quality.Config

	// Logged series, rebound after each cleaning step
	Logged timeseries.Series
	// Sparse check readings. Never modified.
	Checks timeseries.Series
	// Output of the last QualityEncode call
	QC quality.QCSeries

	// Optional audit logger. Discards when nil.
	Log *slog.Logger
}

func (s *Session) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// Clip blanks logged samples outside [low, high]
func (s *Session) Clip(low, high float64) {
	s.Logged = filters.Clip(s.Logged, low, high)
	s.logger().Info("Clipped logged series", "site", s.Site, "low", low, "high", high)
}

// RemoveSpikes clips and then removes outliers against the smoothed reference
func (s *Session) RemoveSpikes(span int, low, high, delta float64) {
	s.Logged = filters.RemoveSpikes(s.Logged, span, low, high, delta)
	s.logger().Info("Removed spikes from logged series", "site", s.Site, "span", span, "delta", delta)
}

// CloseGaps drops short missing runs from the logged series
func (s *Session) CloseGaps() {
	before := s.Logged.Len()
	s.Logged = s.Logged.CloseSmallGaps(s.Config.GapLimit)
	s.logger().Info("Closed small gaps", "site", s.Site, "removed", before-s.Logged.Len())
}

// QualityEncode runs the full grading pipeline over the current state
func (s *Session) QualityEncode() error {
	qc, err := quality.Encode(s.Logged, s.Checks, s.Grader, s.Config)
	if err != nil {
		return err
	}
	s.QC = qc
	s.logger().Info("Encoded quality series", "site", s.Site, "records", len(qc))
	return nil
}
