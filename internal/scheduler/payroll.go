package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal/payslip"
	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "0 0 1 * *"

type PayrollRunner interface {
	RunPayroll(ctx context.Context, month, year int) (payslip.RunResult, error)
}

// PayrollScheduler generates the previous month's payslips on a cron schedule.
type PayrollScheduler struct {
	cron     *cron.Cron
	runner   PayrollRunner
	schedule string
	location *time.Location
	timeout  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewPayrollScheduler(runner PayrollRunner, schedule string, location *time.Location, logger *slog.Logger) *PayrollScheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if location == nil {
		location = time.UTC
	}
	return &PayrollScheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		runner:   runner,
		schedule: schedule,
		location: location,
		timeout:  30 * time.Minute,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the clock used to pick the pay period.
func (s *PayrollScheduler) WithClock(now func() time.Time) *PayrollScheduler {
	s.now = now
	return s
}

func (s *PayrollScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.job); err != nil {
		return fmt.Errorf("schedule payroll job %q: %w", s.schedule, err)
	}
	s.cron.Start()

	s.logger.Info("payroll scheduler started",
		"schedule", s.schedule,
		"timezone", s.location.String())
	return nil
}

// Stop waits for a running payroll job to finish.
func (s *PayrollScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("payroll scheduler stopped")
}

func (s *PayrollScheduler) job() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled payroll run failed", "error", err)
	}
}

// RunOnce runs payroll for the month before the current one.
func (s *PayrollScheduler) RunOnce(ctx context.Context) (payslip.RunResult, error) {
	month, year := PreviousPeriod(s.now(), s.location)
	s.logger.Info("running payroll", "period", payslip.PeriodLabel(month, year))

	start := time.Now()
	result, err := s.runner.RunPayroll(ctx, month, year)
	if err != nil {
		return result, err
	}

	s.logger.Info("payroll completed",
		"period", payslip.PeriodLabel(month, year),
		"generated", result.Generated,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", time.Since(start))
	return result, nil
}

// PreviousPeriod returns the month and year before now in loc.
func PreviousPeriod(now time.Time, loc *time.Location) (int, int) {
	local := now.In(loc)
	firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	prev := firstOfMonth.AddDate(0, 0, -1)
	return int(prev.Month()), prev.Year()
}
