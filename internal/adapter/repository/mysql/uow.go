package mysql

import (
	"context"

	"krysselista-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// reposFor binds every repository to the same handle.
func reposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Pickups:    &PickupRepository{db: db},
		Profiles:   &ProfileRepository{db: db},
		Children:   &ChildRepository{db: db},
		Authorized: &AuthorizedRepository{db: db},
	}
}
