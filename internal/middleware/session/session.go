// Package session resolves the session cookie into an identity.Identity
// before handlers run.
package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const MsgLoginRequired = "You must be logged in to access this route."

type Loader struct {
	Sessions   *service.SessionService
	CookieName string
	Secure     bool
}

// Load never rejects a request. Callers with a missing or stale cookie
// continue as anonymous, and a stale cookie is removed.
func (m *Loader) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(m.CookieName)
		if err != nil || ck.Value == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		who, err := m.Sessions.Resolve(ctx, ck.Value)
		if err != nil {
			l := logging.FromContext(ctx).With("mw", "session.load")
			if errors.Is(err, service.ErrInvalidSession) {
				l.Debug("session_dropped", "reason", "invalid or expired cookie")
				c.SetCookie(tokens.DeleteCookie(m.CookieName, "/", m.Secure))
			} else {
				l.Error("session_lookup_failed", "error", err)
			}
			return next(c)
		}

		c.SetRequest(c.Request().WithContext(identity.IntoContext(ctx, who)))
		return next(c)
	}
}

func (m *Loader) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !identity.FromContext(c.Request().Context()).LoggedIn {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "message": MsgLoginRequired})
		}
		return next(c)
	}
}

// SetSession writes the cookie for a freshly issued session.
func (m *Loader) SetSession(c echo.Context, s *service.IssuedSession) {
	c.SetCookie(tokens.CreateCookie(m.CookieName, s.Token, "/", s.ExpiresAt, m.Secure))
}
