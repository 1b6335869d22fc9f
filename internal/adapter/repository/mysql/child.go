package mysql

import (
	"context"

	"krysselista-backend/internal/domain/child"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChildRepository struct{ db *gorm.DB }

func NewChildRepository(db *gorm.DB) *ChildRepository { return &ChildRepository{db: db} }

func (r *ChildRepository) Create(ctx context.Context, c *child.Child) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChildRepository) GetByID(ctx context.Context, id string) (*child.Child, error) {
	var out child.Child
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ChildRepository) Link(ctx context.Context, parentID, childID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&child.ParentChild{ParentID: parentID, ChildID: childID}).Error
}

func (r *ChildRepository) IsLinked(ctx context.Context, parentID, childID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&child.ParentChild{}).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Count(&n).Error
	return n > 0, err
}

func (r *ChildRepository) ListByParent(ctx context.Context, parentID string) ([]child.Child, error) {
	var out []child.Child
	err := r.db.WithContext(ctx).
		Joins("JOIN parent_children pc ON pc.child_id = children.id").
		Where("pc.parent_id = ?", parentID).
		Order("children.name").
		Find(&out).Error
	return out, err
}

func (r *ChildRepository) ListAll(ctx context.Context) ([]child.Child, error) {
	var out []child.Child
	return out, r.db.WithContext(ctx).Order("name").Find(&out).Error
}
