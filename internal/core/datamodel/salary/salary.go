package salary

import (
	"database/sql/driver"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// Amounts maps a named allowance or deduction to whole rupiah. Stored as jsonb.
type Amounts map[string]int64

func (a Amounts) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int64(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Amounts) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Amounts{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("salary: cannot scan %T into Amounts", src)
	}
	out := Amounts{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*a = out
	return nil
}

// Total sums every amount. ok is false when an amount is negative or the sum
// does not fit in an int64.
func (a Amounts) Total() (sum int64, ok bool) {
	for _, v := range a {
		if v < 0 || sum > math.MaxInt64-v {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

type Component struct {
	ID          int64     `gorm:"primaryKey"`
	EmployeeID  int64     `gorm:"column:employee_id;not null;uniqueIndex"`
	BasicSalary int64     `gorm:"column:basic_salary;not null"`
	Allowances  Amounts   `gorm:"column:allowances;type:jsonb;not null"`
	Deductions  Amounts   `gorm:"column:deductions;type:jsonb;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Component) TableName() string {
	return "salary_components"
}
