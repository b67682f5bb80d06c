package postgres

import (
	"context"

	"github.com/frahmantamala/hr-management/internal/core/common/storage"
	salaryDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/salary"
	"github.com/frahmantamala/hr-management/internal/salary"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SalaryRepository implements salary.RepositoryAPI using GORM
type SalaryRepository struct {
	db *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) salary.RepositoryAPI {
	return &SalaryRepository{db: db}
}

// Upsert is a single INSERT .. ON CONFLICT (employee_id) DO UPDATE.
func (r *SalaryRepository) Upsert(ctx context.Context, c *salary.Component) error {
	row := salary.ToDataModel(c)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"basic_salary", "allowances", "deductions", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return err
	}

	saved, err := r.GetByEmployee(ctx, c.EmployeeID)
	if err != nil {
		return err
	}
	*c = *saved
	return nil
}

func (r *SalaryRepository) GetByEmployee(ctx context.Context, employeeID int64) (*salary.Component, error) {
	var row salaryDatamodel.Component
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&row).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, salary.ErrSalaryNotFound
		}
		return nil, err
	}
	return salary.FromDataModel(&row), nil
}

func (r *SalaryRepository) List(ctx context.Context) ([]*salary.Component, error) {
	var rows []salaryDatamodel.Component
	if err := r.db.WithContext(ctx).Order("employee_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*salary.Component, 0, len(rows))
	for i := range rows {
		out = append(out, salary.FromDataModel(&rows[i]))
	}
	return out, nil
}
