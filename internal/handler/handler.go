package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dental-portal/internal/session"
)

// Handler serves the unauthenticated pages shared by the whole portal.
type Handler struct {
	sessions *session.Manager
}

func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// Home redirects logged-in visitors straight to their dashboard and shows
// the landing page to everyone else.
func (h *Handler) Home(c *gin.Context) {
	cookie, _ := c.Cookie(session.CookieName)
	if _, err := h.sessions.Resolve(cookie); err == nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"page":  "home",
		"flash": TakeFlash(c),
	}))
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}
