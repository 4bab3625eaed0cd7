// Package store archives cleaned series and quality-code records in LARD-style
// PostgreSQL tables. The engine itself never touches the database, the owning
// session decides what to persist.
package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const ConnEnvVar = "HYDROQC_CONN_STRING"

// Label identifies one archived timeseries
type Label struct {
	Site        string
	Measurement string
}

func (l *Label) LogStr() string {
	return fmt.Sprintf("[%v - %v]: ", l.Site, l.Measurement)
}

// Row of the `public.cleaned` table: one post-filter sample
type CleanObs struct {
	// Timeseries ID
	ID int32
	// Time of observation
	Obstime time.Time
	// Cleaned value, nil where spike or outlier removal blanked the sample
	Value *float64
}

func (o *CleanObs) ToRow() []any {
	return []any{o.ID, o.Obstime, o.Value}
}

// Row of the `public.quality` table: one quality-code change
type QCObs struct {
	// Timeseries ID
	ID int32
	// Time the grade takes effect
	Obstime time.Time
	// Quality code, 0 to 600
	Grade int32
	// Short reason tag ("CHK", "GAP", "OOV", ...)
	Code string
	// Free-text explanation
	Details string
}

func (o *QCObs) ToRow() []any {
	return []any{o.ID, o.Obstime, o.Grade, o.Code, o.Details}
}

// Connect opens a pool against the connection string in ConnEnvVar
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	conn := os.Getenv(ConnEnvVar)
	if conn == "" {
		return nil, fmt.Errorf("%s not set", ConnEnvVar)
	}
	return pgxpool.New(ctx, conn)
}
