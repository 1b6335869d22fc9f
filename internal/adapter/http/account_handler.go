package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/usecase/account"
)

type AccountHandler struct {
	*Handler
	uc *account.Usecase
}

func NewAccountHandler(base *Handler, uc *account.Usecase) *AccountHandler {
	return &AccountHandler{Handler: base, uc: uc}
}

// POST /auth/login
func (h *AccountHandler) Login(c echo.Context) error {
	var req account.LoginInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	res, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, i18n.LoginFailed)
	}
	return h.ok(c, http.StatusOK, "", res)
}

// GET /me/preferences
func (h *AccountHandler) GetPreference(c echo.Context) error {
	dto, err := h.uc.GetPreference(c.Request().Context(), session(c).UserID)
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, "", dto)
}

// PUT /me/preferences
func (h *AccountHandler) SetPreference(c echo.Context) error {
	var req account.PreferenceInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	dto, err := h.uc.SetPreference(c.Request().Context(), session(c).UserID, *req.RequiresApproval)
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.PreferenceSaved, dto)
}
