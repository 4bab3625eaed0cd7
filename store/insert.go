package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetTimeseriesID returns the archive ID for the labelled series,
// inserting a new row if the label was never seen before
func GetTimeseriesID(label *Label, pool *pgxpool.Pool) (tsid int32, err error) {
	err = pool.QueryRow(context.TODO(),
		`SELECT id FROM public.timeseries WHERE site = $1 AND measurement = $2`,
		label.Site, label.Measurement,
	).Scan(&tsid)
	if err == nil {
		return tsid, nil
	}

	err = pool.QueryRow(context.TODO(),
		`INSERT INTO public.timeseries (site, measurement) VALUES ($1, $2) RETURNING id`,
		label.Site, label.Measurement,
	).Scan(&tsid)
	return tsid, err
}

// InsertCleaned bulk-loads cleaned samples for one timeseries
func InsertCleaned(obs []CleanObs, pool *pgxpool.Pool, logStr string) (int64, error) {
	count, err := pool.CopyFrom(
		context.TODO(),
		pgx.Identifier{"public", "cleaned"},
		[]string{"timeseries", "obstime", "obsvalue"},
		pgx.CopyFromSlice(len(obs), func(i int) ([]any, error) {
			return obs[i].ToRow(), nil
		}),
	)
	if err != nil {
		return count, err
	}

	logStr += fmt.Sprintf("%v/%v cleaned rows inserted", count, len(obs))
	if int(count) != len(obs) {
		slog.Warn(logStr)
	} else {
		slog.Info(logStr)
	}
	return count, nil
}

// InsertQC bulk-loads quality-code records for one timeseries
func InsertQC(obs []QCObs, pool *pgxpool.Pool, logStr string) (int64, error) {
	count, err := pool.CopyFrom(
		context.TODO(),
		pgx.Identifier{"public", "quality"},
		[]string{"timeseries", "obstime", "grade", "code", "details"},
		pgx.CopyFromSlice(len(obs), func(i int) ([]any, error) {
			return obs[i].ToRow(), nil
		}),
	)
	if err != nil {
		return count, err
	}

	logStr += fmt.Sprintf("%v/%v quality rows inserted", count, len(obs))
	if int(count) != len(obs) {
		slog.Warn(logStr)
	} else {
		slog.Info(logStr)
	}
	return count, nil
}
