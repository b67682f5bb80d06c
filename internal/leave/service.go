package leave

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	"github.com/frahmantamala/hr-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*Request, error)
	// ListAll joins the requester's name; an empty status lists everything.
	ListAll(ctx context.Context, status string) ([]*Request, error)
	// Decide moves a Pending request to status. It returns ErrLeaveAlreadyClosed
	// when the request exists but is no longer Pending.
	Decide(ctx context.Context, id int64, status string, approverID int64) (*Request, error)
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

func (s *Service) Submit(ctx context.Context, employeeID int64, dto SubmitLeaveDTO) (*Request, error) {
	dto.LeaveType = strings.TrimSpace(dto.LeaveType)
	dto.Reason = strings.TrimSpace(dto.Reason)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	start, appErr := validation.ParseDate("start_date", dto.StartDate)
	if appErr != nil {
		return nil, appErr
	}
	end, appErr := validation.ParseDate("end_date", dto.EndDate)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := validation.DateRange("start_date", start, end); appErr != nil {
		return nil, appErr
	}

	r := &Request{
		EmployeeID: employeeID,
		LeaveType:  dto.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     dto.Reason,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("leave request submitted", "leave_request_id", r.ID, "employee_id", employeeID, "days", r.Days())
	return r, nil
}

func (s *Service) MyRequests(ctx context.Context, employeeID int64) ([]*Request, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}

func (s *Service) AllRequests(ctx context.Context, status string) ([]*Request, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListAll(ctx, status)
}

// UpdateStatus records an Approved or Rejected decision on a Pending request.
func (s *Service) UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO, approverID int64) (*Request, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	r, err := s.repo.Decide(ctx, id, dto.Status, approverID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("leave request decided",
		"leave_request_id", r.ID,
		"status", r.Status,
		"approver_id", approverID)

	if s.publisher != nil {
		event := events.NewLeaveStatusChangedEvent(r.ID, r.EmployeeID, approverID, r.Status, r.StartDate, r.EndDate)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish leave status event", "error", err, "leave_request_id", r.ID)
		}
	}

	return r, nil
}
