package middleware

import (
	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/i18n"
)

// errorBody matches the API error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func fail(c echo.Context, cat *i18n.Catalog, code int, errCode, key string) error {
	msg := key
	if cat != nil {
		msg = i18n.T(cat.For(c.Request().Header.Get(i18n.HeaderAcceptLanguage)), key)
	}
	return c.JSON(code, errorBody{Error: errCode, Message: msg})
}
