package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "slotgate/internal/handler/dto/request"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/domain/booking"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/commands"
	"slotgate/internal/usecase/queries"
)

type ListingHandler struct {
	records  commands.RecordCommands
	listings queries.ListingQueries
}

func NewListingHandler(records commands.RecordCommands, listings queries.ListingQueries) *ListingHandler {
	return &ListingHandler{records: records, listings: listings}
}

// @Summary List rental listings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} resdto.ListingResponse
// @Router /admin/listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	recs, err := h.listings.List(c.Request.Context(), queries.ListingFilter{
		Status: booking.Status(c.Query("status")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromListings(recs))
}

// @Summary Get rental listing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 404 {object} map[string]string
// @Router /admin/listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	rec, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromListing(rec))
}

// @Summary Update listing status
// @Description Approves or rejects a pending listing
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/listings/{id} [patch]
func (h *ListingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = h.records.UpdateListingStatus(c.Request.Context(), id, booking.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid status"})
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
