package employee

// CreateEmployeeDTO is the payload of POST /employees.
type CreateEmployeeDTO struct {
	FullName   string `json:"full_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=100"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	JobTitle   string `json:"job_title" validate:"max=100"`
	Department string `json:"department" validate:"max=100"`
	Role       string `json:"role" validate:"required,role"`
}

// UpdateEmployeeDTO is the payload of PUT /employees/{id}. An empty
// employment_status keeps the current one.
type UpdateEmployeeDTO struct {
	FullName         string `json:"full_name" validate:"required,max=100"`
	JobTitle         string `json:"job_title" validate:"max=100"`
	Department       string `json:"department" validate:"max=100"`
	Role             string `json:"role" validate:"required,role"`
	EmploymentStatus string `json:"employment_status" validate:"omitempty,employment_status"`
}

// CreatedEmployee is the summary returned after a successful create.
type CreatedEmployee struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (e *Employee) ToCreated() CreatedEmployee {
	return CreatedEmployee{ID: e.ID, FullName: e.FullName, Email: e.Email, Role: e.Role}
}
