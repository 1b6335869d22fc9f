package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/usecase/admin"
)

type AdminHandler struct {
	*Handler
	uc *admin.Usecase
}

func NewAdminHandler(base *Handler, uc *admin.Usecase) *AdminHandler {
	return &AdminHandler{Handler: base, uc: uc}
}

// POST /admin/users
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req admin.CreateUserInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	dto, err := h.uc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusCreated, i18n.UserCreated, dto)
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), session(c).UserID, c.Param("id")); err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.UserDeleted, map[string]string{"id": c.Param("id")})
}

// POST /admin/children
func (h *AdminHandler) CreateChild(c echo.Context) error {
	var req admin.CreateChildInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	dto, err := h.uc.CreateChild(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusCreated, i18n.ChildCreated, dto)
}

// POST /admin/roles
func (h *AdminHandler) GrantRole(c echo.Context) error {
	var req admin.GrantRoleInput
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	if err := h.uc.GrantRole(c.Request().Context(), req); err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.RoleGranted, req)
}
