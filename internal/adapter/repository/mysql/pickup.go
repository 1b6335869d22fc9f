package mysql

import (
	"context"

	"krysselista-backend/internal/domain/pickup"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PickupRepository struct{ db *gorm.DB }

func NewPickupRepository(db *gorm.DB) *PickupRepository { return &PickupRepository{db: db} }

func (r *PickupRepository) Create(ctx context.Context, p *pickup.PickupRequest) error {
	// child and parent are display joins only, never written through here
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PickupRepository) GetByID(ctx context.Context, id string) (*pickup.PickupRequest, error) {
	var out pickup.PickupRequest
	res := r.db.WithContext(ctx).
		Preload("Child").Preload("Parent").
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

// UpdateIfStatus is the only write path for transitions. The status guard in the
// WHERE clause makes concurrent callers race on the row, not on a prior read.
func (r *PickupRepository) UpdateIfStatus(ctx context.Context, id string, from pickup.Status, p pickup.Patch) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&pickup.PickupRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(p.Columns())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PickupRepository) ListByStatus(ctx context.Context, q pickup.ListQuery) ([]pickup.PickupRequest, error) {
	dir := "DESC"
	if q.Order == pickup.OldestFirst {
		dir = "ASC"
	}
	tx := r.db.WithContext(ctx).
		Preload("Child").Preload("Parent").
		Where("status = ?", q.Status).
		Order(pickup.SortColumn(q.Status) + " " + dir).
		Order("id " + dir)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var out []pickup.PickupRequest
	return out, tx.Find(&out).Error
}

func (r *PickupRepository) ListByParent(ctx context.Context, parentID string, limit int) ([]pickup.PickupRequest, error) {
	tx := r.db.WithContext(ctx).
		Preload("Child").
		Where("parent_id = ?", parentID).
		Order("requested_at DESC").
		Order("id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var out []pickup.PickupRequest
	return out, tx.Find(&out).Error
}
