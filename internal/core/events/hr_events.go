package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveStatusChanged = "leave.status_changed"
	EventTypePayslipGenerated   = "payslip.generated"
)

type LeaveStatusChangedEvent struct {
	BaseEvent
	LeaveRequestID int64     `json:"leave_request_id"`
	EmployeeID     int64     `json:"employee_id"`
	ApproverID     int64     `json:"approver_id"`
	Status         string    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

func NewLeaveStatusChangedEvent(requestID, employeeID, approverID int64, status string, start, end time.Time) *LeaveStatusChangedEvent {
	return &LeaveStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_request_id": requestID,
				"employee_id":      employeeID,
				"approver_id":      approverID,
				"status":           status,
			},
		},
		LeaveRequestID: requestID,
		EmployeeID:     employeeID,
		ApproverID:     approverID,
		Status:         status,
		StartDate:      start,
		EndDate:        end,
	}
}

type PayslipGeneratedEvent struct {
	BaseEvent
	PayslipID  int64 `json:"payslip_id"`
	EmployeeID int64 `json:"employee_id"`
	Month      int   `json:"month"`
	Year       int   `json:"year"`
	NetSalary  int64 `json:"net_salary"`
}

func NewPayslipGeneratedEvent(payslipID, employeeID int64, month, year int, net int64) *PayslipGeneratedEvent {
	return &PayslipGeneratedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePayslipGenerated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payslip_id":  payslipID,
				"employee_id": employeeID,
				"month":       month,
				"year":        year,
			},
		},
		PayslipID:  payslipID,
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		NetSalary:  net,
	}
}
