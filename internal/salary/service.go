package salary

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/employee"
)

type RepositoryAPI interface {
	// Upsert inserts or replaces the component keyed by employee_id.
	Upsert(ctx context.Context, c *Component) error
	GetByEmployee(ctx context.Context, employeeID int64) (*Component, error)
	List(ctx context.Context) ([]*Component, error)
}

// EmployeeLookup is the part of the directory the salary module needs.
type EmployeeLookup interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeLookup
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeLookup, logger *slog.Logger) *Service {
	return &Service{repo: repo, employees: employees, logger: logger}
}

func (s *Service) Upsert(ctx context.Context, employeeID int64, dto UpsertSalaryDTO) (*Component, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	c := &Component{
		EmployeeID:  employeeID,
		BasicSalary: *dto.BasicSalary,
		Allowances:  Amounts(dto.Allowances),
		Deductions:  Amounts(dto.Deductions),
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		s.logger.Error("failed to save salary component", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("salary component saved",
		"employee_id", employeeID,
		"allowances", len(c.Allowances),
		"deductions", len(c.Deductions))
	return c, nil
}

func (s *Service) Get(ctx context.Context, employeeID int64) (*Component, error) {
	return s.repo.GetByEmployee(ctx, employeeID)
}

// List returns every stored component; payroll runs iterate over it.
func (s *Service) List(ctx context.Context) ([]*Component, error) {
	return s.repo.List(ctx)
}
