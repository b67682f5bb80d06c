package attendance

import "time"

type Record struct {
	ID             int64      `gorm:"primaryKey"`
	EmployeeID     int64      `gorm:"column:employee_id;not null;uniqueIndex:idx_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:idx_attendance_employee_date"`
	CheckInTime    time.Time  `gorm:"column:check_in_time;not null"`
	CheckOutTime   *time.Time `gorm:"column:check_out_time"`
	Status         string     `gorm:"column:status;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// ReportRow is one line of the attendance report joined with the employee.
type ReportRow struct {
	ID             int64      `db:"id" json:"id"`
	EmployeeID     int64      `db:"employee_id" json:"employee_id"`
	FullName       string     `db:"full_name" json:"full_name"`
	Department     *string    `db:"department" json:"department"`
	AttendanceDate time.Time  `db:"attendance_date" json:"attendance_date"`
	CheckInTime    time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime   *time.Time `db:"check_out_time" json:"check_out_time"`
	Status         string     `db:"status" json:"status"`
}
