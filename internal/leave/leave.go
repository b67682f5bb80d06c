package leave

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Request struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	FullName   string    `json:"full_name,omitempty"`
	LeaveType  string    `json:"leave_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	ApprovedBy *int64    `json:"approved_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Days is the inclusive length of the leave.
func (r *Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

var (
	ErrLeaveNotFound      = internal.NewNotFoundError("Leave request not found", internal.ErrCodeLeaveNotFound)
	ErrLeaveAlreadyClosed = internal.NewConflictError("Leave request has already been processed", internal.ErrCodeLeaveAlreadyClosed)
	ErrInvalidStatus      = internal.NewValidationFieldError("status", "status must be one of [Pending Approved Rejected]", internal.ErrCodeInvalidLeaveStatus)
)

func ToDataModel(r *Request) *leaveDatamodel.Request {
	return &leaveDatamodel.Request{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		LeaveType:  r.LeaveType,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
		Status:     r.Status,
		ApprovedBy: r.ApprovedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func FromDataModel(r *leaveDatamodel.Request) *Request {
	return &Request{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		LeaveType:  r.LeaveType,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
		Status:     r.Status,
		ApprovedBy: r.ApprovedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
