package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/employee"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeFinder is the slice of the employee directory auth needs.
type EmployeeFinder interface {
	GetByEmail(ctx context.Context, email string) (*employee.Employee, error)
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
}

// Service is the main auth service with dependencies
type Service struct {
	employees      EmployeeFinder
	tokenGenerator TokenGenerator
	limiter        LoginLimiter
	logger         *slog.Logger
	dummyHash      []byte
}

func NewService(employees EmployeeFinder, tokenGen TokenGenerator, limiter LoginLimiter, logger *slog.Logger) *Service {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	// compared against when the email is unknown so both failures cost a bcrypt round
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
	return &Service{
		employees:      employees,
		tokenGenerator: tokenGen,
		limiter:        limiter,
		logger:         logger,
		dummyHash:      dummy,
	}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if err := s.limiter.Allow(ctx, dto.Email); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByEmail(ctx, dto.Email)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(dto.Password))
		s.recordFailure(ctx, dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(dto.Password)); err != nil {
		s.recordFailure(ctx, dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if !emp.IsActive() {
		return nil, internal.ErrUserInactive
	}

	if err := s.limiter.Reset(ctx, dto.Email); err != nil {
		s.logger.Warn("failed to reset login attempts", "error", err)
	}

	token, err := s.tokenGenerator.GenerateAccessToken(emp.ID, emp.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee logged in", "employee_id", emp.ID, "role", emp.Role)

	return &LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    NewUserResponse(emp.Principal()),
	}, nil
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.logger.Warn("failed to record login attempt", "error", err)
	}
}

// Authenticate resolves a bearer token into the current employee. Any
// existing employee is accepted, whatever their employment status.
func (s *Service) Authenticate(ctx context.Context, token string) (*internal.User, error) {
	claims, err := s.tokenGenerator.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}

	// employment status is only enforced at login
	return emp.Principal(), nil
}
