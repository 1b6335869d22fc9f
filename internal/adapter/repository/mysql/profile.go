package mysql

import (
	"context"

	"krysselista-backend/internal/domain/profile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	var out profile.Profile
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	var out profile.Profile
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *ProfileRepository) SetRequiresApproval(ctx context.Context, id string, v bool) error {
	res := r.db.WithContext(ctx).
		Model(&profile.Profile{}).
		Where("id = ?", id).
		Update("requires_approval", v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// mysql reports 0 rows for an unchanged value, so check the row exists
		var n int64
		if err := r.db.WithContext(ctx).Model(&profile.Profile{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&profile.UserRole{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&profile.Profile{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ProfileRepository) Roles(ctx context.Context, userID string) ([]profile.Role, error) {
	var out []profile.Role
	err := r.db.WithContext(ctx).
		Model(&profile.UserRole{}).
		Where("user_id = ?", userID).
		Order("role").
		Pluck("role", &out).Error
	return out, err
}

// GrantRole is idempotent.
func (r *ProfileRepository) GrantRole(ctx context.Context, userID string, role profile.Role) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&profile.UserRole{UserID: userID, Role: role}).Error
}
