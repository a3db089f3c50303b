package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/usecase/queries"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary List offerable slots for a date
// @Description Returns the free time slots for the given date
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DaySlotsResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetDaySlots(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date must be formatted as YYYY-MM-DD",
		})
		return
	}

	slots, err := h.availability.DaySlots(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlots(dateStr, slots))
}

// @Summary Availability calendar
// @Description Returns per-day availability over a date range
// @Tags availability
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability/days [get]
func (h *AvailabilityHandler) GetDayGrid(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "from must be formatted as YYYY-MM-DD",
		})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "to must be formatted as YYYY-MM-DD",
		})
		return
	}

	grid, err := h.availability.DayGrid(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, queries.ErrBadDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayGrid(grid))
}
