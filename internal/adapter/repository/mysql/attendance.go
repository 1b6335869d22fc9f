package mysql

import (
	"context"
	"time"

	"krysselista-backend/internal/domain/attendance"

	"gorm.io/gorm"
)

type AttendanceRepository struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CheckIn checks for an open log and inserts in one statement, so two
// concurrent check-ins cannot both succeed.
func (r *AttendanceRepository) CheckIn(ctx context.Context, l *attendance.Log, since time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO attendance_logs (id, child_id, checked_in_at, checked_in_by)
		SELECT ?, ?, ?, ? FROM (SELECT 1) AS one
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_logs
			WHERE child_id = ? AND checked_in_at >= ? AND checked_out_at IS NULL
		)`,
		l.ID, l.ChildID, l.CheckedInAt, l.CheckedInBy, l.ChildID, since)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AttendanceRepository) LatestSince(ctx context.Context, childID string, since time.Time) (*attendance.Log, error) {
	var out attendance.Log
	res := r.db.WithContext(ctx).
		Where("child_id = ? AND checked_in_at >= ?", childID, since).
		Order("checked_in_at DESC").
		First(&out)
	return &out, res.Error
}

func (r *AttendanceRepository) CheckOut(ctx context.Context, id, by string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&attendance.Log{}).
		Where("id = ? AND checked_out_at IS NULL", id).
		Updates(map[string]any{"checked_out_at": at, "checked_out_by": by})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AttendanceRepository) ListSince(ctx context.Context, since time.Time) ([]attendance.Log, error) {
	var out []attendance.Log
	err := r.db.WithContext(ctx).
		Where("checked_in_at >= ?", since).
		Order("checked_in_at DESC").
		Find(&out).Error
	return out, err
}
