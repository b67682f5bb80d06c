package postgres

import (
	"context"

	"github.com/frahmantamala/hr-management/internal/core/common/storage"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/hr-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements leave.RepositoryAPI using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, req *leave.Request) error {
	row := leave.ToDataModel(req)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*req = *leave.FromDataModel(row)
	return nil
}

func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*leave.Request, error) {
	var row leaveDatamodel.Request
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, leave.ErrLeaveNotFound
		}
		return nil, err
	}
	return leave.FromDataModel(&row), nil
}

func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*leave.Request, error) {
	var rows []leaveDatamodel.Request
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*leave.Request, 0, len(rows))
	for i := range rows {
		out = append(out, leave.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *LeaveRepository) ListAll(ctx context.Context, status string) ([]*leave.Request, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select("lr.*, e.full_name").
		Joins("JOIN employees e ON e.id = lr.employee_id")
	if status != "" {
		q = q.Where("lr.status = ?", status)
	}

	var rows []leaveDatamodel.RequestWithEmployee
	err := q.Order("CASE lr.status WHEN 'Pending' THEN 1 ELSE 2 END, lr.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*leave.Request, 0, len(rows))
	for i := range rows {
		req := leave.FromDataModel(&rows[i].Request)
		req.FullName = rows[i].FullName
		out = append(out, req)
	}
	return out, nil
}

// Decide updates the row only while it is Pending, then tells a missing
// request apart from one that was already decided.
func (r *LeaveRepository) Decide(ctx context.Context, id int64, status string, approverID int64) (*leave.Request, error) {
	var result *leave.Request
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&leaveDatamodel.Request{}).
			Where("id = ? AND status = ?", id, leave.StatusPending).
			Updates(map[string]interface{}{
				"status":      status,
				"approved_by": approverID,
			})
		if res.Error != nil {
			return res.Error
		}

		var row leaveDatamodel.Request
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if storage.IsNotFound(err) {
				return leave.ErrLeaveNotFound
			}
			return err
		}
		if res.RowsAffected == 0 {
			return leave.ErrLeaveAlreadyClosed
		}
		result = leave.FromDataModel(&row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
