package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "slotgate/internal/handler/dto/request"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/commands"
	"slotgate/internal/usecase/queries"
)

type CheckoutHandler struct {
	checkout     commands.CheckoutCommands
	appointments queries.AppointmentQueries
	listings     queries.ListingQueries
}

func NewCheckoutHandler(
	checkout commands.CheckoutCommands,
	appointments queries.AppointmentQueries,
	listings queries.ListingQueries,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:     checkout,
		appointments: appointments,
		listings:     listings,
	}
}

// @Summary Start appointment checkout
// @Description Validates the booking form and returns the payment redirect URL. No record is created until payment completes.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutAppointmentRequest true "Booking form"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout/appointments [post]
func (h *CheckoutHandler) InitiateAppointment(c *gin.Context) {
	var req reqdto.CheckoutAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	url, err := h.checkout.InitiateAppointment(c.Request.Context(), req.ToPayload())
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CheckoutResponse{RedirectURL: url})
}

// @Summary Start listing checkout
// @Description Validates the listing form and returns the payment redirect URL
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutListingRequest true "Listing form"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout/listings [post]
func (h *CheckoutHandler) InitiateListing(c *gin.Context) {
	var req reqdto.CheckoutListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	url, err := h.checkout.InitiateListing(c.Request.Context(), req.ToPayload())
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CheckoutResponse{RedirectURL: url})
}

// @Summary Checkout confirmation lookup
// @Description Returns the committed record for a completed checkout session, polled by the success page while the webhook settles.
// @Tags checkout
// @Produce json
// @Param session_id query string true "Provider session ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /checkout/confirmation [get]
func (h *CheckoutHandler) GetConfirmation(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_id is required",
		})
		return
	}

	if rec, err := h.appointments.GetBySessionID(c.Request.Context(), sessionID); err == nil {
		c.JSON(http.StatusOK, gin.H{"type": "appointment", "record": resdto.FromAppointment(rec)})
		return
	} else if !infra.IsKind(err, infra.KindNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if rec, err := h.listings.GetBySessionID(c.Request.Context(), sessionID); err == nil {
		c.JSON(http.StatusOK, gin.H{"type": "rental_listing", "record": resdto.FromListing(rec)})
		return
	} else if !infra.IsKind(err, infra.KindNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	// webhook not reconciled yet (or payment never completed)
	c.JSON(http.StatusNotFound, gin.H{
		"error": "Record not committed yet",
	})
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidPayload):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid checkout payload",
		})
	case errors.Is(err, commands.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment provider unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
