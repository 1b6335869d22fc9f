package pickup

import (
	"context"
	"errors"
	"time"

	"krysselista-backend/internal/domain/feed"
	domain "krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/uow"
	"krysselista-backend/internal/metrics"
	"krysselista-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MaxEstimatedMinutes = 240
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	pub  feed.Publisher
	log  *zap.Logger
	now  func() time.Time
}

// NewUsecase: repo serves the single-statement transitions and reads, tx the create flow.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, pub feed.Publisher, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, pub: pub, log: log, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) CreateRequest(ctx context.Context, in CreateRequestInput) (*PickupDTO, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	var req *domain.PickupRequest
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		linked, err := r.Children.IsLinked(ctx, in.ParentID, in.ChildID)
		if err != nil {
			return domain.Transport(err)
		}
		if !linked {
			return domain.ErrNotLinked
		}

		parent, err := r.Profiles.GetByID(ctx, in.ParentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotLinked
		}
		if err != nil {
			return domain.Transport(err)
		}

		personName := parent.FullName
		var personID *string
		if in.PickupPersonID != nil && *in.PickupPersonID != domain.ParentSentinel {
			e, err := r.Authorized.GetByID(ctx, *in.PickupPersonID)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return domain.NewValidationError(domain.FieldError{Field: "pickup_person_id", Reason: "unknown authorized pickup person"})
			case err != nil:
				return domain.Transport(err)
			case !e.Eligible(in.ChildID):
				return domain.NewValidationError(domain.FieldError{Field: "pickup_person_id", Reason: "not a consented pickup person for this child"})
			}
			personName = e.Name
			pid := e.ID
			personID = &pid
		}

		now := u.now().UTC()
		req = &domain.PickupRequest{
			ID:               id.New(),
			ChildID:          in.ChildID,
			ParentID:         in.ParentID,
			PickupPersonName: personName,
			PickupPersonID:   personID,
			Status:           domain.StatusPending,
			RequestedAt:      now,
		}
		if in.EstimatedMinutes > 0 {
			eta := now.Add(time.Duration(in.EstimatedMinutes) * time.Minute)
			req.EstimatedArrivalTime = &eta
		}
		// requires_approval is read once here; changing it later leaves this request alone
		if !parent.RequiresApproval {
			by := parent.ID
			req.Status = domain.StatusApproved
			req.ApprovedAt = &now
			req.ApprovedBy = &by
		}
		if err := r.Pickups.Create(ctx, req); err != nil {
			return domain.Transport(err)
		}

		if c, err := r.Children.GetByID(ctx, in.ChildID); err == nil {
			req.Child = c
		}
		req.Parent = parent
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	metrics.PickupsCreated.WithLabelValues(string(req.Status)).Inc()
	u.publish(ctx, req.ChildID)
	u.log.Info("pickup requested",
		zap.String("id", req.ID), zap.String("child_id", req.ChildID), zap.String("status", string(req.Status)))

	dto := toDTO(req)
	return &dto, nil
}

func validateCreate(in CreateRequestInput) error {
	var flds []domain.FieldError
	if in.ChildID == "" {
		flds = append(flds, domain.FieldError{Field: "child_id", Reason: "required"})
	}
	if in.ParentID == "" {
		flds = append(flds, domain.FieldError{Field: "parent_id", Reason: "required"})
	}
	if in.EstimatedMinutes < 0 || in.EstimatedMinutes > MaxEstimatedMinutes {
		flds = append(flds, domain.FieldError{Field: "estimated_minutes", Reason: "must be between 0 and 240"})
	}
	if in.PickupPersonID != nil && *in.PickupPersonID == "" {
		flds = append(flds, domain.FieldError{Field: "pickup_person_id", Reason: "must not be empty"})
	}
	if len(flds) > 0 {
		return domain.NewValidationError(flds...)
	}
	return nil
}

func (u *Usecase) Approve(ctx context.Context, requestID, staffID string) (*PickupDTO, error) {
	if staffID == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "staff_id", Reason: "required"})
	}
	return u.transition(ctx, domain.OpApprove, requestID, func(now time.Time) domain.Patch {
		by := staffID
		return domain.Patch{ApprovedAt: &now, ApprovedBy: &by}
	})
}

// Reject leaves approved_at and approved_by untouched.
func (u *Usecase) Reject(ctx context.Context, requestID, staffID string) (*PickupDTO, error) {
	if staffID == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "staff_id", Reason: "required"})
	}
	dto, err := u.transition(ctx, domain.OpReject, requestID, func(time.Time) domain.Patch {
		return domain.Patch{}
	})
	if err == nil {
		u.log.Info("pickup rejected", zap.String("id", requestID), zap.String("staff_id", staffID))
	}
	return dto, err
}

func (u *Usecase) Complete(ctx context.Context, requestID string) (*PickupDTO, error) {
	return u.transition(ctx, domain.OpComplete, requestID, func(now time.Time) domain.Patch {
		return domain.Patch{CompletedAt: &now}
	})
}

// transition applies op with a single guarded UPDATE. When nothing matched it
// reads the row back to tell a missing request from one that already moved on.
func (u *Usecase) transition(ctx context.Context, op domain.Op, requestID string, patch func(now time.Time) domain.Patch) (*PickupDTO, error) {
	if requestID == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "id", Reason: "required"})
	}
	from, to, ok := domain.Edge(op)
	if !ok {
		return nil, &domain.TransitionError{Op: op}
	}

	p := patch(u.now().UTC())
	p.Status = to
	changed, err := u.repo.UpdateIfStatus(ctx, requestID, from, p)
	if err != nil {
		metrics.PickupTransitions.WithLabelValues(string(op), "error").Inc()
		return nil, domain.Transport(err)
	}

	cur, gerr := u.repo.GetByID(ctx, requestID)
	if !changed {
		switch {
		case errors.Is(gerr, gorm.ErrRecordNotFound):
			metrics.PickupTransitions.WithLabelValues(string(op), "not_found").Inc()
			return nil, domain.ErrNotFound
		case gerr != nil:
			metrics.PickupTransitions.WithLabelValues(string(op), "error").Inc()
			return nil, domain.Transport(gerr)
		}
		metrics.PickupTransitions.WithLabelValues(string(op), "conflict").Inc()
		return nil, &domain.TransitionError{Op: op, Current: cur.Status}
	}
	metrics.PickupTransitions.WithLabelValues(string(op), "ok").Inc()

	if gerr != nil {
		// the write landed; report what was written
		u.log.Warn("pickup reread failed", zap.String("id", requestID), zap.Error(gerr))
		u.publish(ctx, "")
		return &PickupDTO{
			ID: requestID, Status: string(to),
			ApprovedAt: p.ApprovedAt, ApprovedBy: p.ApprovedBy, CompletedAt: p.CompletedAt,
		}, nil
	}
	u.publish(ctx, cur.ChildID)
	dto := toDTO(cur)
	return &dto, nil
}

// ListByStatus returns one dashboard list. Approved and completed lists are
// capped at their page size; pending is unbounded unless a limit is given.
func (u *Usecase) ListByStatus(ctx context.Context, in ListInput) ([]PickupDTO, error) {
	st := domain.Status(in.Status)
	if !st.Valid() {
		return nil, domain.NewValidationError(domain.FieldError{Field: "status", Reason: "unknown status"})
	}
	if in.Limit < 0 {
		return nil, domain.NewValidationError(domain.FieldError{Field: "limit", Reason: "must not be negative"})
	}
	order := domain.Ordering(in.Order)
	switch order {
	case "":
		order = domain.NewestFirst
	case domain.NewestFirst, domain.OldestFirst:
	default:
		return nil, domain.NewValidationError(domain.FieldError{Field: "order", Reason: "must be newest or oldest"})
	}

	limit := in.Limit
	if pageMax := domain.PageLimit(st); pageMax > 0 && (limit == 0 || limit > pageMax) {
		limit = pageMax
	}

	rows, err := u.repo.ListByStatus(ctx, domain.ListQuery{Status: st, Limit: limit, Order: order})
	if err != nil {
		return nil, domain.Transport(err)
	}
	return toDTOs(rows), nil
}

func (u *Usecase) ParentHistory(ctx context.Context, parentID string, limit int) ([]PickupDTO, error) {
	if parentID == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "parent_id", Reason: "required"})
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	rows, err := u.repo.ListByParent(ctx, parentID, limit)
	if err != nil {
		return nil, domain.Transport(err)
	}
	return toDTOs(rows), nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*PickupDTO, error) {
	p, err := u.repo.GetByID(ctx, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.Transport(err)
	}
	dto := toDTO(p)
	return &dto, nil
}

// publish only logs failures; the row is already committed.
func (u *Usecase) publish(ctx context.Context, childID string) {
	if u.pub == nil {
		return
	}
	if err := u.pub.Publish(ctx, feed.TopicPickups, childID); err != nil {
		metrics.FeedPublishErrors.Inc()
		u.log.Warn("pickup change not published", zap.String("child_id", childID), zap.Error(err))
	}
}

// classify keeps domain errors and wraps anything else (commit failures) as transport.
func classify(err error) error {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve),
		errors.Is(err, domain.ErrNotLinked),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTransport):
		return err
	}
	return domain.Transport(err)
}
