package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"dental-portal/internal/handler"
	"dental-portal/internal/middleware"
	"dental-portal/internal/model"
	"dental-portal/internal/service/booking"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
	r.GET("/book", h.BookPage)
	r.POST("/appointments", h.Book)
	r.POST("/appointments/:id/cancel", h.Cancel)
}

// BookPage backs the booking form; "today" lets the frontend floor its date
// picker.
func (h *Handler) BookPage(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"page":  "book",
		"today": time.Now().Format(model.DateLayout),
		"flash": handler.TakeFlash(c),
	}))
}

func (h *Handler) Dashboard(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	appointments, err := h.svc.ListUpcoming(c.Request.Context(), identity.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.UserID).Msg("failed to list appointments")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"username":     identity.Username,
		"appointments": appointments,
		"flash":        handler.TakeFlash(c),
	}))
}

func (h *Handler) Book(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.SetFlash(c, "danger", "Invalid form submission.")
		c.Redirect(http.StatusSeeOther, "/book")
		return
	}

	if _, err := h.svc.Book(c.Request.Context(), identity.UserID, req.Date, req.Time, req.Type); err != nil {
		if isBookingError(err) {
			handler.SetFlash(c, "danger", err.Error())
			c.Redirect(http.StatusSeeOther, "/book")
			return
		}
		log.Error().Err(err).Int64("user_id", identity.UserID).Msg("booking failed")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	handler.SetFlash(c, "success", "Appointment booked successfully!")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Cancel(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	// A non-numeric id cannot name an appointment; treat it like a missing
	// one rather than leaking a different error shape.
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.SetFlash(c, "danger", booking.ErrNotFound.Error())
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			handler.SetFlash(c, "danger", "Appointment not found or you don't have permission to cancel it.")
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		log.Error().Err(err).Int64("user_id", identity.UserID).Msg("cancellation failed")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	handler.SetFlash(c, "success", "Appointment cancelled successfully.")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func isBookingError(err error) bool {
	return errors.Is(err, booking.ErrMissingField) ||
		errors.Is(err, booking.ErrInvalidFormat) ||
		errors.Is(err, booking.ErrPastDate) ||
		errors.Is(err, booking.ErrSlotTaken)
}
