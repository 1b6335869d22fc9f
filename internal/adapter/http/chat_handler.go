package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/usecase/chat"
)

type ChatHandler struct {
	*Handler
	uc *chat.Usecase
}

func NewChatHandler(base *Handler, uc *chat.Usecase) *ChatHandler {
	return &ChatHandler{Handler: base, uc: uc}
}

// GET /children/:child_id/messages
func (h *ChatHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), session(c), c.Param("child_id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusOK, "", out)
}

// POST /children/:child_id/messages
func (h *ChatHandler) Send(c echo.Context) error {
	var req chat.SendInput
	if err := c.Bind(&req); err != nil {
		return h.fail(c, echo.NewHTTPError(http.StatusBadRequest).SetInternal(err), "")
	}
	// length is checked by the usecase so the message matches the chat wording
	req.ChildID = c.Param("child_id")
	dto, err := h.uc.Send(c.Request().Context(), session(c), req)
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.ok(c, http.StatusCreated, i18n.ChatSent, dto)
}
