package postgres

import (
	"context"

	"github.com/frahmantamala/hr-management/internal/core/common/storage"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

// Create inserts the employee; the unique email index rejects duplicates.
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	row := employee.ToDataModel(e)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if storage.IsUniqueViolation(err) {
			return employee.ErrEmailTaken
		}
		return err
	}
	*e = *employee.FromDataModel(row)
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var rows []employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*employee.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, employee.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	res := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"full_name":         e.FullName,
			"job_title":         e.JobTitle,
			"department":        e.Department,
			"role":              e.Role,
			"employment_status": e.EmploymentStatus,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&employeeDatamodel.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
