package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "slotgate/internal/handler/dto/request"
	resdto "slotgate/internal/handler/dto/response"
	"slotgate/internal/domain/booking"
	"slotgate/internal/infra"
	"slotgate/internal/usecase/commands"
	"slotgate/internal/usecase/queries"
)

type AppointmentHandler struct {
	records      commands.RecordCommands
	appointments queries.AppointmentQueries
}

func NewAppointmentHandler(records commands.RecordCommands, appointments queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{records: records, appointments: appointments}
}

// @Summary List appointments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.AppointmentResponse
// @Router /admin/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	filter := queries.AppointmentFilter{
		Status: booking.Status(c.Query("status")),
	}
	if s := c.Query("from"); s != "" {
		from, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
			return
		}
		filter.From = from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
			return
		}
		filter.To = to
	}

	recs, err := h.appointments.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointments(recs))
}

// @Summary Get appointment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 404 {object} map[string]string
// @Router /admin/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	rec, err := h.appointments.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointment(rec))
}

// @Summary Update appointment status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/appointments/{id} [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = h.records.UpdateAppointmentStatus(c.Request.Context(), id, booking.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid status"})
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete appointment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.records.DeleteAppointment(c.Request.Context(), id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
