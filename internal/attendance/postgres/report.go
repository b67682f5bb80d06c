package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/jmoiron/sqlx"
)

const reportQuery = `
	SELECT a.id, a.employee_id, e.full_name, e.department, a.attendance_date,
	       a.check_in_time, a.check_out_time, a.status
	FROM attendance_records a
	JOIN employees e ON a.employee_id = e.id`

// ReportRepository runs the cross-table attendance report with sqlx.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) attendance.ReportRepositoryAPI {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Report(ctx context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error) {
	query := reportQuery
	var args []interface{}

	switch {
	case filter.Date != nil:
		query += " WHERE a.attendance_date = $1"
		args = append(args, filter.Date.Format("2006-01-02"))
	case filter.From != nil && filter.To != nil:
		query += " WHERE a.attendance_date BETWEEN $1 AND $2"
		args = append(args, filter.From.Format("2006-01-02"), filter.To.Format("2006-01-02"))
	}
	query += " ORDER BY a.attendance_date DESC, e.full_name ASC"

	rows := []attendance.ReportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("attendance report: %w", err)
	}
	return rows, nil
}
