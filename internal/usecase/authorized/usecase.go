package authorized

import (
	"context"
	"errors"
	"strings"
	"time"

	"krysselista-backend/internal/auth"
	domain "krysselista-backend/internal/domain/authorized"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/storage"
	"krysselista-backend/internal/usecase/access"
	"krysselista-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo     domain.Repository
	children child.Repository
	now      func() time.Time
}

func NewUsecase(r domain.Repository, children child.Repository) *Usecase {
	return &Usecase{repo: r, children: children, now: time.Now}
}

// List returns the people who may be named as pickup person for the child.
// Only consented entries are ever offered.
func (u *Usecase) List(ctx context.Context, s auth.Session, childID string) ([]EntryDTO, error) {
	if err := access.ChildAccess(ctx, u.children, s, childID); err != nil {
		return nil, err
	}
	rows, err := u.repo.ListConsented(ctx, childID)
	if err != nil {
		return nil, storage.Wrap(err)
	}
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Add(ctx context.Context, s auth.Session, in AddInput) (*EntryDTO, error) {
	if !in.ConsentGiven {
		return nil, domain.ErrNoConsent
	}
	if err := access.ChildAccess(ctx, u.children, s, in.ChildID); err != nil {
		return nil, err
	}

	now := u.now().UTC()
	e := &domain.Entry{
		ID:           id.New(),
		ChildID:      in.ChildID,
		Name:         strings.TrimSpace(in.Name),
		Relationship: strings.TrimSpace(in.Relationship),
		ConsentGiven: true,
		ConsentDate:  &now,
		CreatedBy:    s.UserID,
		CreatedAt:    now,
	}
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			e.Phone = &p
		}
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return nil, storage.Wrap(err)
	}
	dto := toDTO(e)
	return &dto, nil
}

func (u *Usecase) Remove(ctx context.Context, s auth.Session, entryID string) error {
	e, err := u.repo.GetByID(ctx, entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return storage.Wrap(err)
	}
	if err := access.ChildAccess(ctx, u.children, s, e.ChildID); err != nil {
		if errors.Is(err, child.ErrNotLinked) {
			return domain.ErrNotAllowed
		}
		return err
	}
	err = u.repo.Delete(ctx, entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return storage.Wrap(err)
}

func toDTO(e *domain.Entry) EntryDTO {
	return EntryDTO{
		ID: e.ID, ChildID: e.ChildID, Name: e.Name, Relationship: e.Relationship,
		Phone: e.Phone, ConsentGiven: e.ConsentGiven, ConsentDate: e.ConsentDate, CreatedAt: e.CreatedAt,
	}
}
