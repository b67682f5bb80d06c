package payslip

type GeneratePayslipDTO struct {
	EmployeeID int64 `json:"employee_id" validate:"required,min=1"`
	Month      int   `json:"month" validate:"required,min=1,max=12"`
	Year       int   `json:"year" validate:"required,min=2000,max=9999"`
}

// RunResult reports what a payroll run did for one period.
type RunResult struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
