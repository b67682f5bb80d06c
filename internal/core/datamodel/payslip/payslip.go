package payslip

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/datamodel/salary"
	"github.com/goccy/go-json"
)

// Details is the salary breakdown frozen at generation time.
type Details struct {
	Allowances salary.Amounts `json:"allowances"`
	Deductions salary.Amounts `json:"deductions"`
}

func (d Details) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Details) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Details{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("payslip: cannot scan %T into Details", src)
	}
	var out Details
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*d = out
	return nil
}

type Payslip struct {
	ID              int64     `gorm:"primaryKey"`
	EmployeeID      int64     `gorm:"column:employee_id;not null;uniqueIndex:idx_payslip_employee_period"`
	PayPeriodMonth  int       `gorm:"column:pay_period_month;not null;uniqueIndex:idx_payslip_employee_period"`
	PayPeriodYear   int       `gorm:"column:pay_period_year;not null;uniqueIndex:idx_payslip_employee_period"`
	BasicSalary     int64     `gorm:"column:basic_salary;not null"`
	TotalAllowances int64     `gorm:"column:total_allowances;not null"`
	TotalDeductions int64     `gorm:"column:total_deductions;not null"`
	NetSalary       int64     `gorm:"column:net_salary;not null"`
	Details         Details   `gorm:"column:details;type:jsonb;not null"`
	GeneratedAt     time.Time `gorm:"column:generated_at;autoCreateTime"`
}

func (Payslip) TableName() string {
	return "payslips"
}
