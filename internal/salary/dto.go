package salary

// UpsertSalaryDTO replaces the employee's salary component. BasicSalary is a
// pointer so that an explicit zero is told apart from a missing field.
//
// Every amount is capped at MaxAmount and each map at MaxLines entries, so
// no accepted component can overflow a payslip total.
type UpsertSalaryDTO struct {
	BasicSalary *int64           `json:"basic_salary" validate:"required,min=0,max=1000000000000"`
	Allowances  map[string]int64 `json:"allowances" validate:"required,max=50,dive,keys,required,max=100,endkeys,min=0,max=1000000000000"`
	Deductions  map[string]int64 `json:"deductions" validate:"required,max=50,dive,keys,required,max=100,endkeys,min=0,max=1000000000000"`
}

const (
	// MaxAmount is the largest single amount in rupiah, matching the max tags above.
	MaxAmount int64 = 1_000_000_000_000
	MaxLines        = 50
)
