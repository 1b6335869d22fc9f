package pickup

import (
	"context"
	"sort"
	"sync"
	"time"

	"krysselista-backend/internal/domain/authorized"
	"krysselista-backend/internal/domain/child"
	domain "krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/domain/uow"
	"krysselista-backend/internal/testutil/authorizedmock"
	"krysselista-backend/internal/testutil/childmock"
	"krysselista-backend/internal/testutil/feedmock"
	"krysselista-backend/internal/testutil/pickupmock"
	"krysselista-backend/internal/testutil/profilemock"
	"krysselista-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 9, 8, 14, 30, 0, 0, time.UTC)

// memStore backs pickupmock.Repo with a map so lifecycle tests can observe stored state.
type memStore struct {
	mu   sync.Mutex
	rows map[string]domain.PickupRequest
}

func newMemStore() *memStore { return &memStore{rows: map[string]domain.PickupRequest{}} }

func (s *memStore) get(id string) (domain.PickupRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	return r, ok
}

func (s *memStore) put(r domain.PickupRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[r.ID] = r
}

func (s *memStore) repo() *pickupmock.Repo {
	return &pickupmock.Repo{
		CreateFn: func(_ context.Context, r *domain.PickupRequest) error {
			s.put(*r)
			return nil
		},
		GetByIDFn: func(_ context.Context, id string) (*domain.PickupRequest, error) {
			r, ok := s.get(id)
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &r, nil
		},
		UpdateIfStatusFn: func(_ context.Context, id string, from domain.Status, p domain.Patch) (bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			r, ok := s.rows[id]
			if !ok || r.Status != from {
				return false, nil
			}
			r.Status = p.Status
			if p.ApprovedAt != nil {
				r.ApprovedAt = p.ApprovedAt
			}
			if p.ApprovedBy != nil {
				r.ApprovedBy = p.ApprovedBy
			}
			if p.CompletedAt != nil {
				r.CompletedAt = p.CompletedAt
			}
			s.rows[id] = r
			return true, nil
		},
		ListByStatusFn: func(_ context.Context, q domain.ListQuery) ([]domain.PickupRequest, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []domain.PickupRequest
			for _, r := range s.rows {
				if r.Status == q.Status {
					out = append(out, r)
				}
			}
			key := func(r domain.PickupRequest) time.Time {
				switch q.Status {
				case domain.StatusApproved:
					return *r.ApprovedAt
				case domain.StatusCompleted:
					return *r.CompletedAt
				}
				return r.RequestedAt
			}
			sort.Slice(out, func(i, j int) bool {
				if q.Order == domain.OldestFirst {
					return key(out[i]).Before(key(out[j]))
				}
				return key(out[i]).After(key(out[j]))
			})
			if q.Limit > 0 && len(out) > q.Limit {
				out = out[:q.Limit]
			}
			return out, nil
		},
	}
}

type fixture struct {
	store    *memStore
	feed     *feedmock.Feed
	parent   *profile.Profile
	child    *child.Child
	entries  map[string]*authorized.Entry
	linked   bool
	profiles *profilemock.Repo
	children *childmock.Repo
	auth     *authorizedmock.Repo
}

func newFixture(requiresApproval bool) *fixture {
	f := &fixture{
		store:   newMemStore(),
		feed:    &feedmock.Feed{},
		parent:  &profile.Profile{ID: "parent-1", FullName: "Kari Nordmann", RequiresApproval: requiresApproval},
		child:   &child.Child{ID: "child-1", Name: "Ola", PhotoURL: "https://example.com/ola.jpg"},
		entries: map[string]*authorized.Entry{},
		linked:  true,
	}
	f.profiles = &profilemock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*profile.Profile, error) {
			if id != f.parent.ID {
				return nil, gorm.ErrRecordNotFound
			}
			p := *f.parent
			return &p, nil
		},
	}
	f.children = &childmock.Repo{
		IsLinkedFn: func(_ context.Context, parentID, childID string) (bool, error) {
			return f.linked && parentID == f.parent.ID && childID == f.child.ID, nil
		},
		GetByIDFn: func(_ context.Context, id string) (*child.Child, error) {
			if id != f.child.ID {
				return nil, gorm.ErrRecordNotFound
			}
			return f.child, nil
		},
	}
	f.auth = &authorizedmock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*authorized.Entry, error) {
			e, ok := f.entries[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return e, nil
		},
	}
	return f
}

func (f *fixture) addEntry(id, name, childID string, consent bool) {
	f.entries[id] = &authorized.Entry{ID: id, ChildID: childID, Name: name, Relationship: "Bestemor", ConsentGiven: consent}
}

func (f *fixture) usecase() *Usecase {
	repo := f.store.repo()
	tx := uowmock.Passthrough(uow.Repos{Pickups: repo, Profiles: f.profiles, Children: f.children, Authorized: f.auth})
	return NewUsecase(repo, tx, f.feed, nil).WithClock(func() time.Time { return fixedNow })
}

func ptr[T any](v T) *T { return &v }
