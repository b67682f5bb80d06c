package salary

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	salaryDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/salary"
)

// Amounts is a named allowance or deduction list in whole rupiah.
type Amounts = salaryDatamodel.Amounts

// Component is the single salary record an employee has.
type Component struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	BasicSalary int64     `json:"basic_salary"`
	Allowances  Amounts   `json:"allowances"`
	Deductions  Amounts   `json:"deductions"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var ErrSalaryNotFound = internal.NewNotFoundError("Salary component not found for this employee", internal.ErrCodeSalaryNotFound)

// Clone copies the maps so callers can keep a snapshot.
func (c *Component) Clone() *Component {
	cp := *c
	cp.Allowances = copyAmounts(c.Allowances)
	cp.Deductions = copyAmounts(c.Deductions)
	return &cp
}

func copyAmounts(a Amounts) Amounts {
	out := make(Amounts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func ToDataModel(c *Component) *salaryDatamodel.Component {
	return &salaryDatamodel.Component{
		ID:          c.ID,
		EmployeeID:  c.EmployeeID,
		BasicSalary: c.BasicSalary,
		Allowances:  c.Allowances,
		Deductions:  c.Deductions,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModel(c *salaryDatamodel.Component) *Component {
	out := &Component{
		ID:          c.ID,
		EmployeeID:  c.EmployeeID,
		BasicSalary: c.BasicSalary,
		Allowances:  c.Allowances,
		Deductions:  c.Deductions,
		UpdatedAt:   c.UpdatedAt,
	}
	if out.Allowances == nil {
		out.Allowances = Amounts{}
	}
	if out.Deductions == nil {
		out.Deductions = Amounts{}
	}
	return out
}
