package employee

import "time"

type Employee struct {
	ID               int64     `gorm:"primaryKey"`
	FullName         string    `gorm:"column:full_name;not null"`
	Email            string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash     string    `gorm:"column:password_hash;not null"`
	JobTitle         string    `gorm:"column:job_title"`
	Department       string    `gorm:"column:department"`
	Role             string    `gorm:"column:role;not null"`
	EmploymentStatus string    `gorm:"column:employment_status;not null;default:'Active'"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
