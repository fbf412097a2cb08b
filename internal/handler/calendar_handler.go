package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type calendarService interface {
	Legend(ctx context.Context) ([]models.LegendItem, error)
	CreateLegendItem(ctx context.Context, req dto.LegendItemRequest) (models.LegendItem, error)
	UpdateLegendItem(ctx context.Context, id string, req dto.LegendItemRequest) (models.LegendItem, error)
	DeleteLegendItem(ctx context.Context, id string) error
	Events(ctx context.Context) ([]models.CalendarEvent, error)
	ToggleEvent(ctx context.Context, req dto.ToggleEventRequest) (dto.ToggleEventResponse, error)
	DayStatusRange(ctx context.Context, from, to string) (dto.DayStatusRangeResponse, error)
}

type calendarExporter interface {
	CalendarICS(ctx context.Context) (filename string, data []byte, err error)
}

// CalendarHandler exposes the school calendar, its legend and the ICS
// export.
type CalendarHandler struct {
	service  calendarService
	exporter calendarExporter
}

// NewCalendarHandler builds a new handler.
func NewCalendarHandler(service calendarService, exporter calendarExporter) *CalendarHandler {
	return &CalendarHandler{service: service, exporter: exporter}
}

// Legend godoc
// @Summary List legend items
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/legend [get]
func (h *CalendarHandler) Legend(c *gin.Context) {
	items, err := h.service.Legend(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateLegendItem godoc
// @Summary Create a legend item
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.LegendItemRequest true "Legend item"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/legend [post]
func (h *CalendarHandler) CreateLegendItem(c *gin.Context) {
	var req dto.LegendItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid legend payload"))
		return
	}
	item, err := h.service.CreateLegendItem(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateLegendItem godoc
// @Summary Update a legend item
// @Tags Calendar
// @Accept json
// @Produce json
// @Param id path string true "Legend item id"
// @Param payload body dto.LegendItemRequest true "Legend item"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/legend/{id} [put]
func (h *CalendarHandler) UpdateLegendItem(c *gin.Context) {
	var req dto.LegendItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid legend payload"))
		return
	}
	item, err := h.service.UpdateLegendItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// DeleteLegendItem godoc
// @Summary Delete a legend item and every day tagged with it
// @Tags Calendar
// @Param id path string true "Legend item id"
// @Success 204
// @Security BearerAuth
// @Router /calendar/legend/{id} [delete]
func (h *CalendarHandler) DeleteLegendItem(c *gin.Context) {
	if err := h.service.DeleteLegendItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Events godoc
// @Summary List tagged calendar days
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/events [get]
func (h *CalendarHandler) Events(c *gin.Context) {
	events, err := h.service.Events(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// ToggleEvent godoc
// @Summary Toggle a (date, legend item) tag
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.ToggleEventRequest true "Toggle request"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/events/toggle [post]
func (h *CalendarHandler) ToggleEvent(c *gin.Context) {
	var req dto.ToggleEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	resp, err := h.service.ToggleEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// DayStatus godoc
// @Summary Tracking state for a date range
// @Tags Calendar
// @Produce json
// @Param from query string true "From date (YYYY-MM-DD)"
// @Param to query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/status [get]
func (h *CalendarHandler) DayStatus(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from and to query parameters are required"))
		return
	}
	resp, err := h.service.DayStatusRange(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ExportICS godoc
// @Summary Download the school calendar as an ICS file
// @Tags Calendar
// @Produce text/calendar
// @Success 200 {file} file
// @Security BearerAuth
// @Router /calendar/export [get]
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	filename, data, err := h.exporter.CalendarICS(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
