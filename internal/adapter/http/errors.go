package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/attendance"
	"krysselista-backend/internal/domain/authorized"
	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/feed"
	"krysselista-backend/internal/domain/pickup"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/domain/storage"
	"krysselista-backend/internal/i18n"
	"krysselista-backend/internal/metrics"
	"krysselista-backend/internal/observability"
	"krysselista-backend/internal/usecase/account"
	"krysselista-backend/internal/usecase/admin"
	"krysselista-backend/internal/usecase/chat"
)

type errMapping struct {
	status int
	code   string
	key    string
}

// mapError decides status, machine code and message key for err.
// Order matters: more specific sentinels first.
func mapError(err error) errMapping {
	var (
		ve  validator.ValidationErrors
		pve *pickup.ValidationError
		he  *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &pve):
		return errMapping{http.StatusUnprocessableEntity, "VALIDATION_FAILED", i18n.ErrValidation}
	case errors.Is(err, authorized.ErrNoConsent):
		return errMapping{http.StatusUnprocessableEntity, "CONSENT_REQUIRED", i18n.AuthorizedNoConsent}
	case errors.Is(err, chat.ErrEmptyMessage):
		return errMapping{http.StatusUnprocessableEntity, "INVALID_MESSAGE", i18n.ChatInvalid}
	case errors.Is(err, auth.ErrWeakPassword):
		return errMapping{http.StatusUnprocessableEntity, "WEAK_PASSWORD", i18n.WeakPassword}
	case errors.Is(err, admin.ErrUnknownRole):
		return errMapping{http.StatusUnprocessableEntity, "UNKNOWN_ROLE", i18n.ErrValidation}

	case errors.Is(err, account.ErrInvalidCredentials):
		return errMapping{http.StatusUnauthorized, "INVALID_CREDENTIALS", i18n.LoginFailed}

	case errors.Is(err, child.ErrNotLinked):
		return errMapping{http.StatusForbidden, "NOT_LINKED", i18n.ErrNotLinked}
	case errors.Is(err, authorized.ErrNotAllowed):
		return errMapping{http.StatusForbidden, "NOT_ALLOWED", i18n.AuthorizedNotAllowed}
	case errors.Is(err, account.ErrRoleNotHeld):
		return errMapping{http.StatusForbidden, "ROLE_NOT_HELD", i18n.RoleNotHeld}
	case errors.Is(err, admin.ErrSelfDelete):
		return errMapping{http.StatusForbidden, "SELF_DELETE", i18n.SelfDelete}

	case errors.Is(err, pickup.ErrNotFound),
		errors.Is(err, child.ErrNotFound),
		errors.Is(err, profile.ErrNotFound),
		errors.Is(err, authorized.ErrNotFound):
		return errMapping{http.StatusNotFound, "NOT_FOUND", i18n.ErrNotFound}

	case errors.Is(err, pickup.ErrInvalidTransition):
		return errMapping{http.StatusConflict, "INVALID_TRANSITION", i18n.ErrInvalidTransition}
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		return errMapping{http.StatusConflict, "ALREADY_CHECKED_IN", i18n.AttendanceAlreadyIn}
	case errors.Is(err, attendance.ErrNotCheckedIn):
		return errMapping{http.StatusConflict, "NOT_CHECKED_IN", i18n.AttendanceNotIn}
	case errors.Is(err, profile.ErrEmailUsed):
		return errMapping{http.StatusConflict, "EMAIL_TAKEN", i18n.EmailTaken}
	case errors.Is(err, profile.ErrHasHistory):
		return errMapping{http.StatusConflict, "HAS_HISTORY", i18n.HasHistory}

	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, feed.ErrUnavailable):
		return errMapping{http.StatusServiceUnavailable, "UNAVAILABLE", i18n.ErrTransport}

	case errors.As(err, &he):
		return httpErrorMapping(he.Code)
	}
	return errMapping{http.StatusInternalServerError, "INTERNAL", i18n.ErrInternal}
}

func httpErrorMapping(code int) errMapping {
	switch code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return errMapping{code, "INVALID_BODY", i18n.ErrInvalidBody}
	case http.StatusUnauthorized:
		return errMapping{code, "UNAUTHORIZED", i18n.ErrUnauthorized}
	case http.StatusForbidden:
		return errMapping{code, "FORBIDDEN", i18n.ErrForbidden}
	case http.StatusNotFound:
		return errMapping{code, "NOT_FOUND", i18n.ErrNotFound}
	case http.StatusMethodNotAllowed:
		return errMapping{code, "METHOD_NOT_ALLOWED", i18n.ErrInvalidBody}
	case http.StatusServiceUnavailable:
		return errMapping{code, "UNAVAILABLE", i18n.ErrTransport}
	}
	if code >= 400 && code < 500 {
		return errMapping{code, "BAD_REQUEST", i18n.ErrInvalidBody}
	}
	return errMapping{http.StatusInternalServerError, "INTERNAL", i18n.ErrInternal}
}

// fail writes the error envelope. opKey, when set, replaces the generic
// message of server-side failures with the operation's own wording.
func (h *Handler) fail(c echo.Context, err error, opKey string) error {
	m := mapError(err)
	tr := h.translator(c)

	msg := i18n.T(tr, m.key)
	if m.status >= 500 && opKey != "" {
		msg = i18n.T(tr, opKey)
	}
	resp := ErrorResponse{Error: m.code, Message: msg}
	if m.status == http.StatusUnprocessableEntity && m.code == "VALIDATION_FAILED" {
		resp.Details = h.v.FieldErrors(err)
	}

	metrics.HTTPErrors.WithLabelValues(strconv.Itoa(m.status)).Inc()
	if m.status >= 500 {
		h.log.Error("request failed",
			zap.String("method", c.Request().Method), zap.String("route", c.Path()), zap.Error(err))
		observability.CaptureErr(err)
	}
	return c.JSON(m.status, resp)
}

// ErrorHandler renders errors that reach echo (routing, binding, middleware)
// in the same envelope as handler failures.
func (h *Handler) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if werr := h.fail(c, err, ""); werr != nil {
		h.log.Warn("error response not written", zap.Error(werr))
	}
}
