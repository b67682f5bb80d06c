package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
)

type RepositoryAPI interface {
	// Create inserts a check-in; a second one for the same day returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, r *Record) error
	// GetForDay returns ErrNotCheckedIn when there is no record.
	GetForDay(ctx context.Context, employeeID int64, day time.Time) (*Record, error)
	// CheckOut sets check_out_time only while it is still empty.
	CheckOut(ctx context.Context, id int64, at time.Time) error
	History(ctx context.Context, employeeID int64, limit int) ([]*Record, error)
}

type ReportRepositoryAPI interface {
	Report(ctx context.Context, filter ReportFilter) ([]ReportRow, error)
}

type Service struct {
	repo     RepositoryAPI
	reports  ReportRepositoryAPI
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, reports ReportRepositoryAPI, location *time.Location, logger *slog.Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		reports:  reports,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Location is the zone "today" is computed in.
func (s *Service) Location() *time.Location {
	return s.location
}

// Today is the calendar day in the service location, as UTC midnight.
func (s *Service) Today() time.Time {
	return DayOf(s.now(), s.location)
}

// DayOf truncates t to its calendar day in loc and returns that day at UTC midnight.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) CheckIn(ctx context.Context, employeeID int64) (*Record, error) {
	now := s.now().UTC()
	r := &Record{
		EmployeeID:     employeeID,
		AttendanceDate: DayOf(now, s.location),
		CheckInTime:    now,
		Status:         StatusPresent,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("employee checked in", "employee_id", employeeID, "attendance_id", r.ID)
	return r, nil
}

func (s *Service) CheckOut(ctx context.Context, employeeID int64) (*Record, error) {
	now := s.now().UTC()

	r, err := s.repo.GetForDay(ctx, employeeID, DayOf(now, s.location))
	if err != nil {
		return nil, err
	}
	if r.CheckedOut() {
		return nil, ErrAlreadyCheckedOut
	}

	out := now
	if out.Before(r.CheckInTime) {
		out = r.CheckInTime
	}

	if err := s.repo.CheckOut(ctx, r.ID, out); err != nil {
		return nil, err
	}
	r.CheckOutTime = &out

	s.logger.Info("employee checked out", "employee_id", employeeID, "attendance_id", r.ID)
	return r, nil
}

// TodayRecord returns today's record or nil when the employee has not checked in.
func (s *Service) TodayRecord(ctx context.Context, employeeID int64) (*Record, error) {
	r, err := s.repo.GetForDay(ctx, employeeID, s.Today())
	if errors.Is(err, ErrNotCheckedIn) {
		return nil, nil
	}
	return r, err
}

func (s *Service) History(ctx context.Context, employeeID int64) ([]*Record, error) {
	return s.repo.History(ctx, employeeID, HistoryLimit)
}

// Report lists attendance for every employee, optionally for one day.
func (s *Service) Report(ctx context.Context, date string) ([]ReportRow, error) {
	var filter ReportFilter
	if date != "" {
		d, appErr := validation.ParseDate("date", date)
		if appErr != nil {
			return nil, appErr
		}
		filter.Date = &d
	}
	return s.reports.Report(ctx, filter)
}

// ExportRange lists the rows of the CSV export. The range applies only when
// both bounds are given.
func (s *Service) ExportRange(ctx context.Context, startDate, endDate string) ([]ReportRow, error) {
	var filter ReportFilter
	if startDate != "" && endDate != "" {
		from, appErr := validation.ParseDate("startDate", startDate)
		if appErr != nil {
			return nil, appErr
		}
		to, appErr := validation.ParseDate("endDate", endDate)
		if appErr != nil {
			return nil, appErr
		}
		if appErr := validation.DateRange("startDate", from, to); appErr != nil {
			return nil, appErr
		}
		filter.From, filter.To = &from, &to
	}
	return s.reports.Report(ctx, filter)
}
