package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCartCookie names the cookie holding the anonymous cart identity.
	SessionCartCookie = "sessionCartId"

	// ContextKeySessionCartID is the echo context key for the session cart ID.
	ContextKeySessionCartID = "sessionCartID"

	sessionCartTTL = 30 * 24 * time.Hour
)

// SessionCartMiddleware assigns every visitor a stable session cart identity.
type SessionCartMiddleware struct{}

// NewSessionCartMiddleware is the constructor for SessionCartMiddleware.
func NewSessionCartMiddleware() *SessionCartMiddleware {
	return &SessionCartMiddleware{}
}

// EnsureSessionCart reads the session cart cookie, minting one on first visit.
func (m *SessionCartMiddleware) EnsureSessionCart(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sessionCartID string

		cookie, err := c.Cookie(SessionCartCookie)
		if err == nil && cookie.Value != "" {
			sessionCartID = cookie.Value
		} else {
			sessionCartID = uuid.New().String()
			c.SetCookie(&http.Cookie{
				Name:     SessionCartCookie,
				Value:    sessionCartID,
				Path:     "/",
				Expires:  time.Now().Add(sessionCartTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(ContextKeySessionCartID, sessionCartID)

		return next(c)
	}
}

// GetSessionCartID returns the session cart ID set by EnsureSessionCart.
func GetSessionCartID(c echo.Context) string {
	if id, ok := c.Get(ContextKeySessionCartID).(string); ok {
		return id
	}

	return ""
}
