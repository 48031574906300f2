package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"dental-portal/internal/handler"
	"dental-portal/internal/model"
	"dental-portal/internal/service/auth"
	"dental-portal/internal/session"
)

type Handler struct {
	svc      *auth.Service
	sessions *session.Manager
}

func NewHandler(svc *auth.Service, sessions *session.Manager) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}

// RegisterPage and LoginPage back the forms; rendering itself lives in the
// frontend, so they only hand over the pending notice.
func (h *Handler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  "register",
		"flash": handler.TakeFlash(c),
	}))
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  "login",
		"flash": handler.TakeFlash(c),
	}))
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.SetFlash(c, "danger", "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		if isRegistrationError(err) {
			handler.SetFlash(c, "danger", err.Error())
			c.Redirect(http.StatusSeeOther, "/register")
			return
		}
		log.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	handler.SetFlash(c, "success", "Registration successful! Please log in.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.SetFlash(c, "danger", "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			handler.SetFlash(c, "danger", "Incorrect email or password.")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	// Full session reset: any identity the caller already held is destroyed
	// before the new one is issued.
	if old, err := c.Cookie(session.CookieName); err == nil {
		h.sessions.Clear(old)
	}

	cookie, err := h.sessions.Issue(session.Identity{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to issue session")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	c.SetCookie(session.CookieName, cookie, 0, "/", "", false, true)
	handler.SetFlash(c, "success", "You have logged in successfully!")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session unconditionally; logging out twice is fine.
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		h.sessions.Clear(cookie)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)

	handler.SetFlash(c, "info", "You have logged out.")
	c.Redirect(http.StatusSeeOther, "/")
}

func isRegistrationError(err error) bool {
	return errors.Is(err, auth.ErrMissingField) ||
		errors.Is(err, auth.ErrUsernameTaken) ||
		errors.Is(err, auth.ErrEmailTaken)
}
