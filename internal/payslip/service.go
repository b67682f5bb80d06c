package payslip

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/salary"
)

type RepositoryAPI interface {
	// Create inserts the payslip or fails with ErrPayslipDuplicate when the
	// (employee, month, year) period already exists.
	Create(ctx context.Context, p *Payslip) error
	GetByID(ctx context.Context, id int64) (*Payslip, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*Payslip, error)
	ListByPeriod(ctx context.Context, month, year int) ([]*Payslip, error)
}

type SalaryReader interface {
	Get(ctx context.Context, employeeID int64) (*salary.Component, error)
	List(ctx context.Context) ([]*salary.Component, error)
}

type EmployeeLookup interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
}

// Document is a rendered payslip ready to be streamed.
type Document struct {
	Filename string
	Content  []byte
}

type Service struct {
	repo      RepositoryAPI
	salaries  SalaryReader
	employees EmployeeLookup
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, salaries SalaryReader, employees EmployeeLookup, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		salaries:  salaries,
		employees: employees,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Generate(ctx context.Context, dto GeneratePayslipDTO) (*Payslip, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	return s.generate(ctx, dto.EmployeeID, dto.Month, dto.Year)
}

func (s *Service) generate(ctx context.Context, employeeID int64, month, year int) (*Payslip, error) {
	component, err := s.salaries.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	p, err := Compute(component, month, year)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payslip generated",
		"payslip_id", p.ID,
		"employee_id", employeeID,
		"period", p.Period(),
		"net_salary", p.NetSalary)

	s.publish(ctx, p)
	return p, nil
}

func (s *Service) publish(ctx context.Context, p *Payslip) {
	if s.publisher == nil {
		return
	}
	event := events.NewPayslipGeneratedEvent(p.ID, p.EmployeeID, p.Month, p.Year, p.NetSalary)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish payslip event", "error", err, "payslip_id", p.ID)
	}
}

// NotifyPeriod re-publishes the generated event of every payslip in the
// period so that the availability mail goes out again.
func (s *Service) NotifyPeriod(ctx context.Context, month, year int) (int, error) {
	if month < 1 || month > 12 || year < 2000 {
		return 0, internal.NewValidationError("invalid pay period", internal.ErrCodeInvalidPeriod)
	}
	list, err := s.repo.ListByPeriod(ctx, month, year)
	if err != nil {
		return 0, err
	}
	for _, p := range list {
		s.publish(ctx, p)
	}
	s.logger.Info("payslip notifications republished", "period", PeriodLabel(month, year), "count", len(list))
	return len(list), nil
}

func (s *Service) MyHistory(ctx context.Context, employeeID int64) ([]Summary, error) {
	list, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(list))
	for _, p := range list {
		out = append(out, p.Summary())
	}
	return out, nil
}

// Download renders the payslip as a PDF for its owner or for Admin/HR.
func (s *Service) Download(ctx context.Context, id int64, user *internal.User) (*Document, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.EmployeeID != user.ID && !user.IsAdminOrHR() {
		s.logger.Warn("payslip download denied",
			"payslip_id", id,
			"owner_id", p.EmployeeID,
			"employee_id", user.ID)
		return nil, ErrPayslipForbidden
	}

	e, err := s.employees.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return nil, err
	}

	content, err := RenderPDF(p, e)
	if err != nil {
		return nil, err
	}
	return &Document{Filename: p.Filename(), Content: content}, nil
}

// RunPayroll generates the period's payslip for every employee with a salary
// component. Existing payslips are counted as skipped, not overwritten.
func (s *Service) RunPayroll(ctx context.Context, month, year int) (RunResult, error) {
	result := RunResult{Month: month, Year: year}
	if month < 1 || month > 12 || year < 2000 {
		return result, internal.NewValidationError("invalid pay period", internal.ErrCodeInvalidPeriod)
	}

	components, err := s.salaries.List(ctx)
	if err != nil {
		return result, err
	}

	for _, c := range components {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, err := s.generate(ctx, c.EmployeeID, month, year)
		switch {
		case err == nil:
			result.Generated++
		case errors.Is(err, ErrPayslipDuplicate):
			result.Skipped++
		default:
			result.Failed++
			s.logger.Error("payroll run failed for employee",
				"error", err,
				"employee_id", c.EmployeeID,
				"period", PeriodLabel(month, year))
		}
	}

	s.logger.Info("payroll run finished",
		"period", PeriodLabel(month, year),
		"generated", result.Generated,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}
