package employee

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Employee struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	JobTitle         string    `json:"job_title"`
	Department       string    `json:"department"`
	Role             string    `json:"role"`
	EmploymentStatus string    `json:"employment_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (e *Employee) IsActive() bool {
	return e.EmploymentStatus == StatusActive
}

// Principal is the request identity derived from the employee.
func (e *Employee) Principal() *internal.User {
	return &internal.User{
		ID:       e.ID,
		Email:    e.Email,
		FullName: e.FullName,
		Role:     e.Role,
		Status:   e.EmploymentStatus,
	}
}

var (
	ErrEmployeeNotFound = internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
	ErrEmailTaken       = internal.NewConflictError("Email is already registered", internal.ErrCodeEmailTaken)
)

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:               e.ID,
		FullName:         e.FullName,
		Email:            e.Email,
		PasswordHash:     e.PasswordHash,
		JobTitle:         e.JobTitle,
		Department:       e.Department,
		Role:             e.Role,
		EmploymentStatus: e.EmploymentStatus,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:               e.ID,
		FullName:         e.FullName,
		Email:            e.Email,
		PasswordHash:     e.PasswordHash,
		JobTitle:         e.JobTitle,
		Department:       e.Department,
		Role:             e.Role,
		EmploymentStatus: e.EmploymentStatus,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
