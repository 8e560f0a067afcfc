package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/model"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS takeoff_reports (
	id TEXT PRIMARY KEY,
	name TEXT,
	spec TEXT,
	status TEXT,
	result TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS report_errors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id TEXT,
	error_message TEXT,
	hint TEXT,
	created_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_report_errors_report_id ON report_errors (report_id);
`

// Store persists takeoff reports in sqlite.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open connects to the sqlite file at dbPath and creates the tables.
func Open(dbPath string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, dbError(err, "Could not open the report database")
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, dbError(err, "Could not create report tables")
	}
	log.Infow("report store ready", "path", dbPath)
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport stores a new report with status pending.
func (s *Store) SaveReport(ctx context.Context, report *model.TakeoffReport) error {
	specJSON, err := json.Marshal(report.Spec)
	if err != nil {
		return ierr.WithError(err).WithHint("Could not encode takeoff spec").Mark(ierr.ErrSystem)
	}

	now := time.Now().UTC()
	if report.Status == "" {
		report.Status = model.TakeoffStatusPending
	}
	report.CreatedAt, report.UpdatedAt = now, now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO takeoff_reports (id, name, spec, status, result, created_at, updated_at) VALUES (?, ?, ?, ?, NULL, ?, ?)`,
		report.ID, report.Name, string(specJSON), string(report.Status), now, now)
	if err != nil {
		return dbError(err, "Could not save takeoff report")
	}
	return nil
}

// ListReports returns all reports, newest first.
func (s *Store) ListReports(ctx context.Context) ([]model.ReportListItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, status, created_at, updated_at FROM takeoff_reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, dbError(err, "Could not list takeoff reports")
	}
	defer rows.Close()

	reports := make([]model.ReportListItem, 0)
	for rows.Next() {
		var item model.ReportListItem
		var status string
		if err := rows.Scan(&item.ID, &item.Name, &status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, dbError(err, "Could not read takeoff report")
		}
		item.Status = model.TakeoffStatus(status)
		reports = append(reports, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "Could not list takeoff reports")
	}
	return reports, nil
}

// GetReport fetches a report with its spec and result.
func (s *Store) GetReport(ctx context.Context, reportID string) (*model.TakeoffReport, error) {
	var specJSON, status string
	var resultJSON sql.NullString
	report := &model.TakeoffReport{ID: reportID}

	err := s.db.QueryRowContext(ctx,
		`SELECT name, spec, status, result, created_at, updated_at FROM takeoff_reports WHERE id = ?`, reportID).
		Scan(&report.Name, &specJSON, &status, &resultJSON, &report.CreatedAt, &report.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("report %s not found", reportID).
			WithHintf("Takeoff report %s does not exist", reportID).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, dbError(err, "Could not load takeoff report")
	}
	report.Status = model.TakeoffStatus(status)

	if err := json.Unmarshal([]byte(specJSON), &report.Spec); err != nil {
		return nil, ierr.WithError(err).WithHint("Stored takeoff spec is corrupt").Mark(ierr.ErrDatabase)
	}
	if resultJSON.Valid && resultJSON.String != "" {
		report.Result = &model.TakeoffResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), report.Result); err != nil {
			return nil, ierr.WithError(err).WithHint("Stored takeoff result is corrupt").Mark(ierr.ErrDatabase)
		}
	}
	return report, nil
}

// UpdateReportStatus updates report status
func (s *Store) UpdateReportStatus(ctx context.Context, reportID string, status model.TakeoffStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE takeoff_reports SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), reportID)
	if err != nil {
		return dbError(err, "Could not update takeoff report")
	}
	return requireRow(res, reportID)
}

// SaveReportResult stores the result and marks the report completed.
func (s *Store) SaveReportResult(ctx context.Context, reportID string, result *model.TakeoffResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return ierr.WithError(err).WithHint("Could not encode takeoff result").Mark(ierr.ErrSystem)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE takeoff_reports SET result = ?, status = ?, updated_at = ? WHERE id = ?`,
		string(resultJSON), string(model.TakeoffStatusCompleted), time.Now().UTC(), reportID)
	if err != nil {
		return dbError(err, "Could not save takeoff result")
	}
	return requireRow(res, reportID)
}

// SaveReportError records an error for a report
func (s *Store) SaveReportError(ctx context.Context, reportID string, reportErr error) error {
	if reportErr == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO report_errors (report_id, error_message, hint, created_at) VALUES (?, ?, ?, ?)`,
		reportID, reportErr.Error(), ierr.DisplayHint(reportErr), time.Now().UTC())
	if err != nil {
		return dbError(err, "Could not record takeoff error")
	}
	return nil
}

// ListReportErrors returns the errors of a report, oldest first.
func (s *Store) ListReportErrors(ctx context.Context, reportID string) ([]model.ReportError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, report_id, error_message, hint, created_at FROM report_errors WHERE report_id = ? ORDER BY id`, reportID)
	if err != nil {
		return nil, dbError(err, "Could not list takeoff errors")
	}
	defer rows.Close()

	reportErrors := make([]model.ReportError, 0)
	for rows.Next() {
		var e model.ReportError
		var hint sql.NullString
		if err := rows.Scan(&e.ID, &e.ReportID, &e.Message, &hint, &e.CreatedAt); err != nil {
			return nil, dbError(err, "Could not read takeoff error")
		}
		e.Hint = hint.String
		reportErrors = append(reportErrors, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "Could not list takeoff errors")
	}
	return reportErrors, nil
}

// DeleteReport removes a report and its errors.
func (s *Store) DeleteReport(ctx context.Context, reportID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "Could not delete takeoff report")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM report_errors WHERE report_id = ?`, reportID); err != nil {
		return dbError(err, "Could not delete takeoff errors")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM takeoff_reports WHERE id = ?`, reportID)
	if err != nil {
		return dbError(err, "Could not delete takeoff report")
	}
	if err := requireRow(res, reportID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return dbError(err, "Could not delete takeoff report")
	}
	s.log.Infow("report deleted", "report_id", reportID)
	return nil
}

func requireRow(res sql.Result, reportID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbError(err, "Could not update takeoff report")
	}
	if n == 0 {
		return ierr.NewErrorf("report %s not found", reportID).
			WithHintf("Takeoff report %s does not exist", reportID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func dbError(err error, hint string) error {
	return ierr.WithError(err).WithHint(hint).Mark(ierr.ErrDatabase)
}
