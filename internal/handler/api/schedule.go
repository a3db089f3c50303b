package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	reqdto "slotgate/internal/handler/dto/request"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/commands"
	"slotgate/internal/usecase/queries"
)

type ScheduleHandler struct {
	schedule commands.ScheduleCommands
	store    queries.ScheduleReadStore
}

func NewScheduleHandler(schedule commands.ScheduleCommands, store queries.ScheduleReadStore) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, store: store}
}

// @Summary Upsert working hours for a weekday
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dow path int true "Day of week (0=Sunday)"
// @Param request body reqdto.UpsertWorkingHoursRequest true "Working hours"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/working-hours/{dow} [put]
func (h *ScheduleHandler) UpsertWorkingHours(c *gin.Context) {
	dow, err := strconv.Atoi(c.Param("dow"))
	if err != nil || dow < 0 || dow > 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "dow must be 0-6",
		})
		return
	}

	var req reqdto.UpsertWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rule, err := req.ToDomain(time.Weekday(dow))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Times must be formatted as HH:MM",
		})
		return
	}

	if err := h.schedule.UpsertWorkingHours(c.Request.Context(), rule); err != nil {
		if errors.Is(err, commands.ErrInvalidRule) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid working hour rule",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List working hour rules
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.WorkingHoursResponse
// @Router /admin/working-hours [get]
func (h *ScheduleHandler) ListWorkingHours(c *gin.Context) {
	rules, err := h.store.ListRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRules(rules))
}

// @Summary Block a calendar date
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockDateRequest true "Date to block"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /admin/blocked-dates [post]
func (h *ScheduleHandler) BlockDate(c *gin.Context) {
	var req reqdto.BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date must be formatted as YYYY-MM-DD",
		})
		return
	}

	if err := h.schedule.BlockDate(c.Request.Context(), date, req.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Unblock a calendar date
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/blocked-dates/{date} [delete]
func (h *ScheduleHandler) UnblockDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date must be formatted as YYYY-MM-DD",
		})
		return
	}

	if err := h.schedule.UnblockDate(c.Request.Context(), date); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Blocked date not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
