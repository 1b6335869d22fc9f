package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/usecase/attendance"
)

type AttendanceHandler struct {
	*Handler
	uc *attendance.Usecase
}

func NewAttendanceHandler(base *Handler, uc *attendance.Usecase) *AttendanceHandler {
	return &AttendanceHandler{Handler: base, uc: uc}
}

// POST /children/:child_id/check-in
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	dto, name, err := h.uc.CheckIn(c.Request().Context(), session(c).UserID, c.Param("child_id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusCreated, i18n.AttendanceCheckedIn, dto, name)
}

// POST /children/:child_id/check-out
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	dto, name, err := h.uc.CheckOut(c.Request().Context(), session(c).UserID, c.Param("child_id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, i18n.AttendanceCheckedOut, dto, name)
}

// GET /attendance/today
func (h *AttendanceHandler) Today(c echo.Context) error {
	out, err := h.uc.Today(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, "", out)
}

// GET /children/:child_id/attendance/today; data is null when the child has no log today.
func (h *AttendanceHandler) ChildToday(c echo.Context) error {
	dto, err := h.uc.ChildToday(c.Request().Context(), session(c), c.Param("child_id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, "", dto)
}
