package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dental-portal/internal/handler"
	"dental-portal/internal/session"
)

const contextIdentity = "identity"

// SessionGate guards the authenticated half of the portal. It is a plain
// presence check: every identity has the same rights over its own bookings.
type SessionGate struct {
	sessions *session.Manager
}

func NewSessionGate(sessions *session.Manager) *SessionGate {
	return &SessionGate{sessions: sessions}
}

// RequireSession resolves the session cookie and puts the identity in the
// request context. Unauthenticated requests are redirected to the login page
// with a notice and never reach the handler.
func (g *SessionGate) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(session.CookieName)

		identity, err := g.sessions.Resolve(cookie)
		if err != nil {
			handler.SetFlash(c, "warning", "You need to log in to access this page.")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(contextIdentity, *identity)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by RequireSession.
func IdentityFrom(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(contextIdentity)
	if !ok {
		return session.Identity{}, false
	}
	identity, ok := v.(session.Identity)
	return identity, ok
}
