package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/usecase/authorized"
)

type AuthorizedHandler struct {
	*Handler
	uc *authorized.Usecase
}

func NewAuthorizedHandler(base *Handler, uc *authorized.Usecase) *AuthorizedHandler {
	return &AuthorizedHandler{Handler: base, uc: uc}
}

// GET /children/:child_id/authorized-pickups
func (h *AuthorizedHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), session(c), c.Param("child_id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, "", out)
}

// POST /children/:child_id/authorized-pickups
func (h *AuthorizedHandler) Add(c echo.Context) error {
	var req authorized.AddInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	req.ChildID = c.Param("child_id")
	dto, err := h.uc.Add(c.Request().Context(), session(c), req)
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusCreated, i18n.AuthorizedAdded, dto, dto.Name)
}

// DELETE /authorized-pickups/:id
func (h *AuthorizedHandler) Remove(c echo.Context) error {
	if err := h.uc.Remove(c.Request().Context(), session(c), c.Param("id")); err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.AuthorizedRemoved, map[string]string{"id": c.Param("id")})
}
