package mysql

import (
	"context"

	"krysselista-backend/internal/domain/authorized"

	"gorm.io/gorm"
)

type AuthorizedRepository struct{ db *gorm.DB }

func NewAuthorizedRepository(db *gorm.DB) *AuthorizedRepository {
	return &AuthorizedRepository{db: db}
}

func (r *AuthorizedRepository) Create(ctx context.Context, e *authorized.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuthorizedRepository) GetByID(ctx context.Context, id string) (*authorized.Entry, error) {
	var out authorized.Entry
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AuthorizedRepository) ListConsented(ctx context.Context, childID string) ([]authorized.Entry, error) {
	var out []authorized.Entry
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND consent_given = ?", childID, true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *AuthorizedRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&authorized.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
