package payslip

import (
	"fmt"
	"math"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	payslipDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/payslip"
	"github.com/frahmantamala/hr-management/internal/salary"
)

// Details is the allowance and deduction breakdown frozen at generation.
type Details = payslipDatamodel.Details

type Payslip struct {
	ID              int64     `json:"id"`
	EmployeeID      int64     `json:"employee_id"`
	Month           int       `json:"pay_period_month"`
	Year            int       `json:"pay_period_year"`
	BasicSalary     int64     `json:"basic_salary"`
	TotalAllowances int64     `json:"total_allowances"`
	TotalDeductions int64     `json:"total_deductions"`
	NetSalary       int64     `json:"net_salary"`
	Details         Details   `json:"details"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Summary is the row shown in an employee's payslip history.
type Summary struct {
	ID          int64     `json:"id"`
	Month       int       `json:"pay_period_month"`
	Year        int       `json:"pay_period_year"`
	NetSalary   int64     `json:"net_salary"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (p *Payslip) Summary() Summary {
	return Summary{
		ID:          p.ID,
		Month:       p.Month,
		Year:        p.Year,
		NetSalary:   p.NetSalary,
		GeneratedAt: p.GeneratedAt,
	}
}

// Period renders the pay period as "August 2025".
func (p *Payslip) Period() string {
	return PeriodLabel(p.Month, p.Year)
}

func (p *Payslip) Filename() string {
	return fmt.Sprintf("payslip_%04d_%02d.pdf", p.Year, p.Month)
}

func PeriodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

var (
	ErrPayslipNotFound  = internal.NewNotFoundError("Payslip not found", internal.ErrCodePayslipNotFound)
	ErrPayslipDuplicate = internal.NewConflictError("A payslip for this employee and period already exists", internal.ErrCodePayslipDuplicate)
	ErrPayslipForbidden = internal.NewForbiddenError("You can only download your own payslips", internal.ErrCodeInsufficientRole)
	ErrAmountOutOfRange = internal.NewValidationError("Salary amounts are out of range", internal.ErrCodeInvalidAmount)
)

// Compute turns a salary component into an unsaved payslip for the period.
// The maps are copied so later edits to the component leave it untouched.
// Totals that are negative or do not fit in an int64 fail with
// ErrAmountOutOfRange.
func Compute(c *salary.Component, month, year int) (*Payslip, error) {
	snapshot := c.Clone()
	allowances, okA := snapshot.Allowances.Total()
	deductions, okD := snapshot.Deductions.Total()
	if !okA || !okD || c.BasicSalary < 0 || c.BasicSalary > math.MaxInt64-allowances {
		return nil, ErrAmountOutOfRange
	}
	return &Payslip{
		EmployeeID:      c.EmployeeID,
		Month:           month,
		Year:            year,
		BasicSalary:     c.BasicSalary,
		TotalAllowances: allowances,
		TotalDeductions: deductions,
		NetSalary:       c.BasicSalary + allowances - deductions,
		Details: Details{
			Allowances: snapshot.Allowances,
			Deductions: snapshot.Deductions,
		},
	}, nil
}

func ToDataModel(p *Payslip) *payslipDatamodel.Payslip {
	return &payslipDatamodel.Payslip{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		PayPeriodMonth:  p.Month,
		PayPeriodYear:   p.Year,
		BasicSalary:     p.BasicSalary,
		TotalAllowances: p.TotalAllowances,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		Details:         p.Details,
		GeneratedAt:     p.GeneratedAt,
	}
}

func FromDataModel(p *payslipDatamodel.Payslip) *Payslip {
	return &Payslip{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		Month:           p.PayPeriodMonth,
		Year:            p.PayPeriodYear,
		BasicSalary:     p.BasicSalary,
		TotalAllowances: p.TotalAllowances,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		Details:         p.Details,
		GeneratedAt:     p.GeneratedAt,
	}
}
