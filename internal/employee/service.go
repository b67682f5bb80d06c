package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"golang.org/x/crypto/bcrypt"
)

// RepositoryAPI is the persistence boundary of the directory.
type RepositoryAPI interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.FullName = strings.TrimSpace(dto.FullName)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	e := &Employee{
		FullName:         dto.FullName,
		Email:            dto.Email,
		PasswordHash:     hash,
		JobTitle:         dto.JobTitle,
		Department:       dto.Department,
		Role:             dto.Role,
		EmploymentStatus: StatusActive,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", e.ID, "role", e.Role)
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	dto.FullName = strings.TrimSpace(dto.FullName)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.FullName = dto.FullName
	e.JobTitle = dto.JobTitle
	e.Department = dto.Department
	e.Role = dto.Role
	if dto.EmploymentStatus != "" {
		e.EmploymentStatus = dto.EmploymentStatus
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
