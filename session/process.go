package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"hydroqc/catalog"
	"hydroqc/quality"
	"hydroqc/store"
	"hydroqc/utils"
)

// Row of the batch file listing the sites to process
type siteRow struct {
	Site        string `csv:"site"`
	Measurement string `csv:"measurement"`
	LoggedFile  string `csv:"logged_file"`
	CheckFile   string `csv:"check_file"`
	// Spike filter settings
	LowClip  float64 `csv:"low_clip"`
	HighClip float64 `csv:"high_clip"`
	Span     int     `csv:"span"`
	Delta    float64 `csv:"delta"`
	// Gaps longer than this many samples are flagged QC100
	GapLimit int `csv:"gap_limit"`
	// Seconds between a check and the nearest valid sample before QC200
	CheckTolerance int `csv:"check_tolerance"`
	// Site quality ceiling, empty for none
	MaxQC *int `csv:"max_qc"`
}

type ProcessCmd struct {
	Sites         string           `arg:"positional,required" help:"CSV file listing sites and their filter settings"`
	FlatConfig    string           `arg:"--flat-config" default:"config/measurement_qc.csv" help:"Flat grading model config file"`
	TwoTierConfig string           `arg:"--twotier-config" default:"config/twotier_qc.csv" help:"Two-tier grading model config file"`
	OutDir        string           `arg:"-o,--out" default:"./out" help:"Directory the cleaned and quality CSV files are written to"`
	From          *utils.Timestamp `arg:"--from" help:"Process data only starting from this date-only timestamp"`
	To            *utils.Timestamp `arg:"--to" help:"Process data only until this date-only timestamp"`
	Store         bool             `help:"Also insert cleaned and quality series into the archive database"`
	RawDueDates   bool             `arg:"--raw-due-dates" help:"Do not round inspection due dates up to midnight"`
}

func (ProcessCmd) Description() string {
	return `Runs spike removal, gap handling and quality coding over dumped series files.
With --store the results are also archived, which requires the "HYDROQC_CONN_STRING"
environment variable.`
}

func (cmd *ProcessCmd) Execute() {
	models, err := catalog.Load(cmd.FlatConfig, cmd.TwoTierConfig)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	rows, err := readSiteRows(cmd.Sites)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	if err := os.MkdirAll(cmd.OutDir, 0755); err != nil {
		slog.Error(err.Error())
		return
	}

	var pool *pgxpool.Pool
	if cmd.Store {
		if err := godotenv.Load(); err != nil {
			fmt.Println(err)
			return
		}
		pool, err = store.Connect(context.TODO())
		if err != nil {
			slog.Error(err.Error())
			return
		}
		defer pool.Close()
	}

	bar := utils.NewBar(len(rows), "Processing sites...")
	for _, row := range rows {
		if err := cmd.processSite(row, models, pool); err != nil {
			slog.Error(fmt.Sprintf("[%s - %s]: %s", row.Site, row.Measurement, err))
		}
		bar.Add(1)
	}
}

func (cmd *ProcessCmd) processSite(row siteRow, models *catalog.Catalog, pool *pgxpool.Pool) error {
	grader, err := models.Lookup(row.Measurement)
	if err != nil {
		return err
	}

	logged, err := ReadSeriesCSV(row.LoggedFile)
	if err != nil {
		return err
	}
	checks, err := ReadSeriesCSV(row.CheckFile)
	if err != nil {
		return err
	}

	if cmd.From != nil || cmd.To != nil {
		logged = logged.Window(cmd.From.Inner(), cmd.To.Inner())
		checks = checks.Window(cmd.From.Inner(), cmd.To.Inner())
	}

	sess := Session{
		Site:        row.Site,
		Measurement: row.Measurement,
		Grader:      grader,
		Config: quality.Config{
			CheckTolerance: time.Duration(row.CheckTolerance) * time.Second,
			GapLimit:       row.GapLimit,
			MaxQC:          row.MaxQC,
			Intervals:      quality.DefaultIntervals(),
			DayEndRounding: !cmd.RawDueDates,
		},
		Logged: logged,
		Checks: checks,
	}

	sess.RemoveSpikes(row.Span, row.LowClip, row.HighClip, row.Delta)
	sess.CloseGaps()
	if err := sess.QualityEncode(); err != nil {
		return err
	}

	cleanPath := filepath.Join(cmd.OutDir, fmt.Sprintf("%s_%s_clean.csv", row.Site, row.Measurement))
	if err := WriteSeriesCSV(cleanPath, sess.Logged); err != nil {
		return err
	}
	qcPath := filepath.Join(cmd.OutDir, fmt.Sprintf("%s_%s_qc.csv", row.Site, row.Measurement))
	if err := WriteQCCSV(qcPath, sess.QC); err != nil {
		return err
	}

	if pool != nil {
		return archive(&sess, pool)
	}
	return nil
}

func archive(sess *Session, pool *pgxpool.Pool) error {
	label := store.Label{Site: sess.Site, Measurement: sess.Measurement}
	tsid, err := store.GetTimeseriesID(&label, pool)
	if err != nil {
		return err
	}

	cleaned := make([]store.CleanObs, sess.Logged.Len())
	for i := range cleaned {
		cleaned[i] = store.CleanObs{ID: tsid, Obstime: sess.Logged.Time(i)}
		if !sess.Logged.MissingAt(i) {
			v := sess.Logged.Value(i)
			cleaned[i].Value = &v
		}
	}
	if _, err := store.InsertCleaned(cleaned, pool, label.LogStr()); err != nil {
		return err
	}

	qc := make([]store.QCObs, len(sess.QC))
	for i, r := range sess.QC {
		qc[i] = store.QCObs{
			ID:      tsid,
			Obstime: r.Time,
			Grade:   int32(r.Grade),
			Code:    r.Code,
			Details: r.Details,
		}
	}
	_, err = store.InsertQC(qc, pool, label.LogStr())
	return err
}

func readSiteRows(path string) ([]siteRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []siteRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}
