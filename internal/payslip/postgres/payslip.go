package postgres

import (
	"context"

	"github.com/frahmantamala/hr-management/internal/core/common/storage"
	payslipDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/payslip"
	"github.com/frahmantamala/hr-management/internal/payslip"
	"gorm.io/gorm"
)

// PayslipRepository implements payslip.RepositoryAPI using GORM
type PayslipRepository struct {
	db *gorm.DB
}

func NewPayslipRepository(db *gorm.DB) payslip.RepositoryAPI {
	return &PayslipRepository{db: db}
}

// Create relies on the unique (employee_id, pay_period_month, pay_period_year)
// index instead of checking for an existing row first.
func (r *PayslipRepository) Create(ctx context.Context, p *payslip.Payslip) error {
	row := payslip.ToDataModel(p)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if storage.IsUniqueViolation(err) {
			return payslip.ErrPayslipDuplicate
		}
		return err
	}
	*p = *payslip.FromDataModel(row)
	return nil
}

func (r *PayslipRepository) GetByID(ctx context.Context, id int64) (*payslip.Payslip, error) {
	var row payslipDatamodel.Payslip
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, payslip.ErrPayslipNotFound
		}
		return nil, err
	}
	return payslip.FromDataModel(&row), nil
}

func (r *PayslipRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*payslip.Payslip, error) {
	var rows []payslipDatamodel.Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("pay_period_year DESC, pay_period_month DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*payslip.Payslip, 0, len(rows))
	for i := range rows {
		out = append(out, payslip.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *PayslipRepository) ListByPeriod(ctx context.Context, month, year int) ([]*payslip.Payslip, error) {
	var rows []payslipDatamodel.Payslip
	err := r.db.WithContext(ctx).
		Where("pay_period_month = ? AND pay_period_year = ?", month, year).
		Order("employee_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*payslip.Payslip, 0, len(rows))
	for i := range rows {
		out = append(out, payslip.FromDataModel(&rows[i]))
	}
	return out, nil
}
