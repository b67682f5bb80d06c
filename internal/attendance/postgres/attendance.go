package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/core/common/storage"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

// AttendanceRepository implements attendance.RepositoryAPI using GORM
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) error {
	row := attendance.ToDataModel(rec)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if storage.IsUniqueViolation(err) {
			return attendance.ErrAlreadyCheckedIn
		}
		return err
	}
	*rec = *attendance.FromDataModel(row)
	return nil
}

func (r *AttendanceRepository) GetForDay(ctx context.Context, employeeID int64, day time.Time) (*attendance.Record, error) {
	var row attendanceDatamodel.Record
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND attendance_date = ?", employeeID, day).
		First(&row).Error
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, attendance.ErrNotCheckedIn
		}
		return nil, err
	}
	return attendance.FromDataModel(&row), nil
}

// CheckOut only touches rows that are still open so concurrent check-outs
// cannot both succeed.
func (r *AttendanceRepository) CheckOut(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&attendanceDatamodel.Record{}).
		Where("id = ? AND check_out_time IS NULL", id).
		Update("check_out_time", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}

func (r *AttendanceRepository) History(ctx context.Context, employeeID int64, limit int) ([]*attendance.Record, error) {
	var rows []attendanceDatamodel.Record
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*attendance.Record, 0, len(rows))
	for i := range rows {
		out = append(out, attendance.FromDataModel(&rows[i]))
	}
	return out, nil
}
