package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type scheduleService interface {
	Template(ctx context.Context) ([]models.ScheduleSlot, error)
	ReplaceTemplate(ctx context.Context, slots []models.ScheduleSlot) error
	SlotsForDate(ctx context.Context, date string) ([]models.ScheduleSlot, error)
}

// ScheduleHandler exposes the weekly timetable template.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler builds a new handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Template godoc
// @Summary Get the weekly timetable template
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedule [get]
func (h *ScheduleHandler) Template(c *gin.Context) {
	slots, err := h.service.Template(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Replace godoc
// @Summary Replace the whole weekly template
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body []models.ScheduleSlot true "Template slots in display order"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var slots []models.ScheduleSlot
	if err := c.ShouldBindJSON(&slots); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	if err := h.service.ReplaceTemplate(c.Request.Context(), slots); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// ForDate godoc
// @Summary Resolve the template for one date
// @Tags Schedule
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedule/day [get]
func (h *ScheduleHandler) ForDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	slots, err := h.service.SlotsForDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}
