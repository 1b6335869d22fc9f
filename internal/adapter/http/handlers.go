package http

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/i18n"
)

// Handler carries what every endpoint needs: messages, validation and logging.
type Handler struct {
	cat *i18n.Catalog
	v   *CustomValidator
	log *zap.Logger
}

func NewHandler(cat *i18n.Catalog, v *CustomValidator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if v == nil {
		v = NewValidator()
	}
	return &Handler{cat: cat, v: v, log: log}
}

// DataResponse is the success envelope. Message is set for actions the user triggered.
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) translator(c echo.Context) ut.Translator {
	if h.cat == nil {
		return nil
	}
	return h.cat.For(c.Request().Header.Get(i18n.HeaderAcceptLanguage))
}

func (h *Handler) msg(c echo.Context, key string, params ...string) string {
	return i18n.T(h.translator(c), key, params...)
}

func (h *Handler) ok(c echo.Context, status int, key string, data any, params ...string) error {
	resp := DataResponse{Data: data}
	if key != "" {
		resp.Message = h.msg(c, key, params...)
	}
	return c.JSON(status, resp)
}

// bind decodes and validates the request into v. Decode failures surface as 400.
func (h *Handler) bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	return h.v.Validate(v)
}

func session(c echo.Context) auth.Session {
	s, _ := auth.FromContext(c.Request().Context())
	return s
}
