package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"krysselista-backend/internal/domain/authorized"
	"krysselista-backend/internal/domain/feed"
	"krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/testutil/feedmock"
	ucpickup "krysselista-backend/internal/usecase/pickup"
)

func TestCreatePickup_PendingThenApproveThenComplete(t *testing.T) {
	env := newTestEnv(t)
	parent := as(env, parentID, profile.RoleParent)
	staff := as(env, staffID, profile.RoleEmployee)

	rec := env.do(http.MethodPost, "/pickups", map[string]any{"child_id": childID, "estimated_minutes": 15}, parent)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create => want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var created ucpickup.PickupDTO
	msg := decodeData(t, rec, &created)
	if msg != "Hentingsvarsel sendt! Personalet vil godkjenne hentingen." {
		t.Fatalf("message = %q", msg)
	}
	if created.Status != string(pickup.StatusPending) || created.PickupPersonName != "Kari Nordmann" || created.EstimatedArrivalTime == nil {
		t.Fatalf("unexpected dto: %+v", created)
	}

	rec = env.do(http.MethodPost, "/pickups/"+created.ID+"/approve", nil, staff, lang("en"))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var approved ucpickup.PickupDTO
	if msg := decodeData(t, rec, &approved); msg != "Pickup approved!" {
		t.Fatalf("message = %q", msg)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != staffID || approved.ApprovalMode != ucpickup.ApprovalStaff {
		t.Fatalf("approval not recorded: %+v", approved)
	}

	// a second approve is refused and names the conflict
	rec = env.do(http.MethodPost, "/pickups/"+created.ID+"/approve", nil, staff, lang("en"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second approve => want 409, got %d", rec.Code)
	}
	if er := decodeError(t, rec); er.Error != "INVALID_TRANSITION" || er.Message != "The pickup has already been handled" {
		t.Fatalf("conflict body = %+v", er)
	}

	rec = env.do(http.MethodPost, "/pickups/"+created.ID+"/complete", nil, staff)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete => want 200, got %d", rec.Code)
	}
	var done ucpickup.PickupDTO
	if msg := decodeData(t, rec, &done); msg != "Barnet er hentet!" {
		t.Fatalf("message = %q", msg)
	}
	if done.CompletedAt == nil || done.Status != string(pickup.StatusCompleted) {
		t.Fatalf("not completed: %+v", done)
	}

	var fetched ucpickup.PickupDTO
	decodeData(t, env.do(http.MethodGet, "/pickups/"+created.ID, nil, staff), &fetched)
	if fetched.ID != created.ID || fetched.Status != string(pickup.StatusCompleted) {
		t.Fatalf("get = %+v", fetched)
	}

	if got := env.feed.Published(); len(got) != 3 {
		t.Fatalf("published signals = %v, want 3", got)
	}
}

func TestCreatePickup_AutoApprovedMessage(t *testing.T) {
	env := newTestEnv(t)
	env.parent.RequiresApproval = false

	rec := env.do(http.MethodPost, "/pickups", map[string]any{"child_id": childID}, as(env, parentID, profile.RoleParent), lang("en"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var dto ucpickup.PickupDTO
	if msg := decodeData(t, rec, &dto); msg != "Pickup request sent and approved automatically." {
		t.Fatalf("message = %q", msg)
	}
	if dto.ApprovalMode != ucpickup.ApprovalAuto || dto.ApprovedBy == nil || *dto.ApprovedBy != parentID {
		t.Fatalf("not auto-approved: %+v", dto)
	}
}

func TestCreatePickup_Errors(t *testing.T) {
	env := newTestEnv(t)
	parent := as(env, parentID, profile.RoleParent)

	cases := []struct {
		name     string
		body     map[string]any
		opts     []reqOpt
		wantCode int
		wantErr  string
	}{
		{"not linked", map[string]any{"child_id": "0d1e2f3a-4b5c-4d6e-8f7a-9b0c1d2e3f4a"}, []reqOpt{parent}, http.StatusForbidden, "NOT_LINKED"},
		{"bad child id", map[string]any{"child_id": "abc"}, []reqOpt{parent}, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"eta out of range", map[string]any{"child_id": childID, "estimated_minutes": 500}, []reqOpt{parent}, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"staff cannot request", map[string]any{"child_id": childID}, []reqOpt{as(env, staffID, profile.RoleEmployee)}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/pickups", tc.body, tc.opts...)
			if rec.Code != tc.wantCode {
				t.Fatalf("want %d, got %d body=%s", tc.wantCode, rec.Code, rec.Body.String())
			}
			er := decodeError(t, rec)
			if er.Error != tc.wantErr || er.Message == "" {
				t.Fatalf("error body = %+v", er)
			}
			if tc.wantCode == http.StatusUnprocessableEntity && len(er.Details) == 0 {
				t.Fatalf("validation failure without details")
			}
		})
	}
}

func TestCreatePickup_UnconsentedPickupPerson(t *testing.T) {
	env := newTestEnv(t)
	env.authorized.GetByIDFn = func(_ context.Context, id string) (*authorized.Entry, error) {
		return &authorized.Entry{ID: id, ChildID: childID, Name: "Bestemor Anne", ConsentGiven: false}, nil
	}
	rec := env.do(http.MethodPost, "/pickups",
		map[string]any{"child_id": childID, "pickup_person_id": "5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d"},
		as(env, parentID, profile.RoleParent))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	er := decodeError(t, rec)
	if len(er.Details) != 1 || er.Details[0].Field != "pickup_person_id" {
		t.Fatalf("details = %+v", er.Details)
	}
}

func TestTransition_NotFoundAndTransport(t *testing.T) {
	env := newTestEnv(t)
	staff := as(env, staffID, profile.RoleAdmin)

	rec := env.do(http.MethodPost, "/pickups/missing/reject", nil, staff)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing => want 404, got %d", rec.Code)
	}

	env.pickups.UpdateIfStatusFn = func(context.Context, string, pickup.Status, pickup.Patch) (bool, error) {
		return false, errors.New("connection reset")
	}
	env.build()
	rec = env.do(http.MethodPost, "/pickups/any/approve", nil, staff, lang("en"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("transport => want 503, got %d", rec.Code)
	}
	if er := decodeError(t, rec); er.Message != i18nText(t, "en", i18n.PickupApproveFailed) {
		t.Fatalf("transport message = %q", er.Message)
	}
}

func TestTransition_ParentIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/pickups/any/approve", nil, as(env, parentID, profile.RoleParent))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", rec.Code)
	}
}

func TestListPickups(t *testing.T) {
	env := newTestEnv(t)
	parent := as(env, parentID, profile.RoleParent)
	staff := as(env, staffID, profile.RoleEmployee)
	for i := 0; i < 3; i++ {
		if rec := env.do(http.MethodPost, "/pickups", map[string]any{"child_id": childID}, parent); rec.Code != http.StatusCreated {
			t.Fatalf("seed create: %d", rec.Code)
		}
	}

	rec := env.do(http.MethodGet, "/pickups?status=pending", nil, staff)
	if rec.Code != http.StatusOK {
		t.Fatalf("list => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var rows []ucpickup.PickupDTO
	decodeData(t, rec, &rows)
	if len(rows) != 3 {
		t.Fatalf("pending rows = %d, want 3", len(rows))
	}

	rec = env.do(http.MethodGet, "/pickups?status=bogus", nil, staff)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad status => want 422, got %d", rec.Code)
	}

	rec = env.do(http.MethodGet, "/pickups/mine", nil, parent)
	if rec.Code != http.StatusOK {
		t.Fatalf("mine => want 200, got %d", rec.Code)
	}
	rows = nil
	decodeData(t, rec, &rows)
	if len(rows) != 3 {
		t.Fatalf("history rows = %d, want 3", len(rows))
	}
}

func TestBoard_RefetchesAfterChange(t *testing.T) {
	env := newTestEnv(t)
	staff := as(env, staffID, profile.RoleEmployee)

	var view ucpickup.BoardView
	decodeData(t, env.do(http.MethodGet, "/pickups/board", nil, staff), &view)
	if !view.Live || len(view.Pending) != 0 {
		t.Fatalf("initial board = %+v", view)
	}

	env.do(http.MethodPost, "/pickups", map[string]any{"child_id": childID}, as(env, parentID, profile.RoleParent))

	view = ucpickup.BoardView{}
	decodeData(t, env.do(http.MethodGet, "/pickups/board", nil, staff), &view)
	if len(view.Pending) != 1 {
		t.Fatalf("board not refreshed after a change: %+v", view)
	}
}

func TestBoard_FeedDownStillServes(t *testing.T) {
	env := newTestEnv(t)
	env.feed = &feedmock.Feed{
		SubscribeFn: func(context.Context, feed.Scope, func(feed.Signal)) (feed.Subscription, error) {
			return nil, feed.ErrUnavailable
		},
	}
	env.build()

	var view ucpickup.BoardView
	rec := env.do(http.MethodGet, "/pickups/board", nil, as(env, staffID, profile.RoleEmployee))
	if rec.Code != http.StatusOK {
		t.Fatalf("board => want 200, got %d", rec.Code)
	}
	decodeData(t, rec, &view)
	if view.Live {
		t.Fatalf("board should report live=false without a feed")
	}
}

func i18nText(t *testing.T, locale, key string) string {
	t.Helper()
	cat, err := i18n.New()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return i18n.T(cat.Get(locale), key)
}
