package leave

import "time"

type Request struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id;not null;index"`
	LeaveType  string    `gorm:"column:leave_type;not null"`
	StartDate  time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time `gorm:"column:end_date;type:date;not null"`
	Reason     string    `gorm:"column:reason;not null"`
	Status     string    `gorm:"column:status;not null;default:'Pending'"`
	ApprovedBy *int64    `gorm:"column:approved_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string {
	return "leave_requests"
}

// RequestWithEmployee is a leave request joined with the requester's name.
type RequestWithEmployee struct {
	Request
	FullName string `gorm:"column:full_name"`
}
