package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"krysselista-backend/internal/auth"
	"krysselista-backend/internal/domain/profile"
	"krysselista-backend/internal/i18n"
)

// extractBearer reads the Authorization header. EventSource clients cannot set
// headers, so GET requests may pass the token as access_token instead.
func extractBearer(c echo.Context) (string, bool) {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
			return "", false
		}
		return strings.TrimSpace(tok), true
	}
	if c.Request().Method == http.MethodGet {
		if tok := c.QueryParam("access_token"); tok != "" {
			return tok, true
		}
	}
	return "", false
}

// RequireAuth verifies the session token and puts the auth.Session on the request context.
func RequireAuth(tokens *auth.Tokens, cat *i18n.Catalog) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := extractBearer(c)
			if !ok {
				return fail(c, cat, http.StatusUnauthorized, "MISSING_AUTH", i18n.ErrUnauthorized)
			}
			s, err := tokens.Parse(raw)
			if err != nil {
				code := "INVALID_TOKEN"
				if errors.Is(err, auth.ErrTokenExpired) {
					code = "TOKEN_EXPIRED"
				}
				return fail(c, cat, http.StatusUnauthorized, code, i18n.ErrUnauthorized)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithSession(req.Context(), s)))
			return next(c)
		}
	}
}

// RequireRole allows the request only when the session role is one of roles.
func RequireRole(cat *i18n.Catalog, roles ...profile.Role) echo.MiddlewareFunc {
	allowed := make(map[profile.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := auth.FromContext(c.Request().Context())
			if !ok {
				return fail(c, cat, http.StatusUnauthorized, "MISSING_AUTH", i18n.ErrUnauthorized)
			}
			if _, ok := allowed[s.Role]; !ok {
				return fail(c, cat, http.StatusForbidden, "FORBIDDEN", i18n.ErrForbidden)
			}
			return next(c)
		}
	}
}
