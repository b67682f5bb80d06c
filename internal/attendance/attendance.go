package attendance

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
)

const (
	StatusPresent = "Present"
	HistoryLimit  = 30
)

type Record struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	AttendanceDate time.Time  `json:"attendance_date"`
	CheckInTime    time.Time  `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (r *Record) CheckedOut() bool {
	return r.CheckOutTime != nil
}

// ReportRow is a record joined with the employee's name and department.
type ReportRow = attendanceDatamodel.ReportRow

// ReportFilter narrows the report. Date wins over the range when both are set.
type ReportFilter struct {
	Date *time.Time
	From *time.Time
	To   *time.Time
}

var (
	ErrAlreadyCheckedIn  = internal.NewConflictError("You have already checked in today", internal.ErrCodeAlreadyCheckedIn)
	ErrNotCheckedIn      = internal.NewNotFoundError("You have not checked in today", internal.ErrCodeNotCheckedIn)
	ErrAlreadyCheckedOut = internal.NewConflictError("You have already checked out today", internal.ErrCodeAlreadyCheckedOut)
)

func ToDataModel(r *Record) *attendanceDatamodel.Record {
	return &attendanceDatamodel.Record{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		AttendanceDate: r.AttendanceDate,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
}

func FromDataModel(r *attendanceDatamodel.Record) *Record {
	return &Record{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		AttendanceDate: r.AttendanceDate,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
}
