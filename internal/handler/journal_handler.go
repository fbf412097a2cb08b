package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type journalService interface {
	Save(ctx context.Context, req dto.JournalEntryRequest) ([]models.ClassLog, error)
	Day(ctx context.Context, date string) (dto.JournalDayResponse, error)
	ScheduledHours(ctx context.Context, date, courseID string) (dto.ScheduledHoursResponse, error)
	List(ctx context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error)
	Delete(ctx context.Context, id string) error
}

// JournalHandler exposes the daily class journal.
type JournalHandler struct {
	service journalService
}

// NewJournalHandler builds a new handler.
func NewJournalHandler(service journalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// Day godoc
// @Summary Journal view for one date
// @Tags Journal
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /journal/day [get]
func (h *JournalHandler) Day(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	day, err := h.service.Day(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day, nil)
}

// Save godoc
// @Summary Record one journal entry
// @Tags Journal
// @Accept json
// @Produce json
// @Param payload body dto.JournalEntryRequest true "Journal entry"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /journal [post]
func (h *JournalHandler) Save(c *gin.Context) {
	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid journal payload"))
		return
	}
	entries, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entries)
}

// List godoc
// @Summary List journal entries
// @Tags Journal
// @Produce json
// @Param courseId query string false "Course id"
// @Param unitId query string false "Unit id"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	logs, err := h.service.List(c.Request.Context(), models.ClassLogFilter{
		Date:     c.Query("date"),
		CourseID: c.Query("courseId"),
		UnitID:   c.Query("unitId"),
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}

// ScheduledHours godoc
// @Summary Pre-fill duration from the weekly template
// @Tags Journal
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param courseId query string true "Course id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /journal/scheduled-hours [get]
func (h *JournalHandler) ScheduledHours(c *gin.Context) {
	date := c.Query("date")
	courseID := c.Query("courseId")
	if date == "" || courseID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date and courseId query parameters are required"))
		return
	}
	resp, err := h.service.ScheduledHours(c.Request.Context(), date, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Delete one journal entry
// @Tags Journal
// @Param id path string true "Log id"
// @Success 204
// @Security BearerAuth
// @Router /journal/{id} [delete]
func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
