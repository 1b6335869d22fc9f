package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domain "krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/usecase/pickup"
)

type PickupHandler struct {
	*Handler
	uc    *pickup.Usecase
	board *pickup.Board
}

func NewPickupHandler(base *Handler, uc *pickup.Usecase, board *pickup.Board) *PickupHandler {
	return &PickupHandler{Handler: base, uc: uc, board: board}
}

// POST /pickups
func (h *PickupHandler) Create(c echo.Context) error {
	var req pickup.CreateRequestInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	req.ParentID = session(c).UserID

	dto, err := h.uc.CreateRequest(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, i18n.PickupRequestFailed)
	}
	key := i18n.PickupRequested
	if dto.ApprovalMode == pickup.ApprovalAuto {
		key = i18n.PickupAutoApproved
	}
	return h.ok(c, http.StatusCreated, key, dto)
}

// GET /pickups/mine
func (h *PickupHandler) Mine(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.uc.ParentHistory(c.Request().Context(), session(c).UserID, limit)
	if err != nil {
		return h.fail(c, err, i18n.PickupListFailed)
	}
	return h.ok(c, http.StatusOK, "", out)
}

// GET /pickups?status=&limit=&order=
func (h *PickupHandler) List(c echo.Context) error {
	var in pickup.ListInput
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err, "")
	}
	out, err := h.uc.ListByStatus(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, i18n.PickupListFailed)
	}
	return h.ok(c, http.StatusOK, "", out)
}

// GET /pickups/:id
func (h *PickupHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, "", dto)
}

// GET /pickups/board
func (h *PickupHandler) Board(c echo.Context) error {
	view, err := h.board.Snapshot(c.Request().Context())
	if err != nil {
		return h.fail(c, err, i18n.PickupListFailed)
	}
	return h.ok(c, http.StatusOK, "", view)
}

func (h *PickupHandler) Approve(c echo.Context) error {
	return h.transition(c, domain.OpApprove)
}

func (h *PickupHandler) Reject(c echo.Context) error {
	return h.transition(c, domain.OpReject)
}

func (h *PickupHandler) Complete(c echo.Context) error {
	return h.transition(c, domain.OpComplete)
}

// POST /pickups/:id/{approve,reject,complete}
func (h *PickupHandler) transition(c echo.Context, op domain.Op) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	staff := session(c).UserID

	var (
		dto *pickup.PickupDTO
		err error
	)
	switch op {
	case domain.OpApprove:
		dto, err = h.uc.Approve(ctx, id, staff)
	case domain.OpReject:
		dto, err = h.uc.Reject(ctx, id, staff)
	case domain.OpComplete:
		dto, err = h.uc.Complete(ctx, id)
	default:
		err = fmt.Errorf("unsupported pickup operation %q", op)
	}
	if err != nil {
		return h.fail(c, err, pickupFailKeys[op])
	}
	return h.ok(c, http.StatusOK, pickupOKKeys[op], dto)
}

var (
	pickupOKKeys = map[domain.Op]string{
		domain.OpApprove:  i18n.PickupApproved,
		domain.OpReject:   i18n.PickupRejected,
		domain.OpComplete: i18n.PickupCompleted,
	}
	pickupFailKeys = map[domain.Op]string{
		domain.OpApprove:  i18n.PickupApproveFailed,
		domain.OpReject:   i18n.PickupRejectFailed,
		domain.OpComplete: i18n.PickupCompleteFail,
	}
)
