package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/dto"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type reportService interface {
	GlobalSummary(ctx context.Context) (dto.GlobalSummaryReport, error)
	ModuleDetail(ctx context.Context, courseID string) (dto.ModuleDetailReport, error)
	ChronologicalJournal(ctx context.Context) (dto.ChronologicalJournalReport, error)
	RequestExport(ctx context.Context, report, format, courseID string) (dto.ExportJobResponse, error)
	OpenExport(filename string) (*os.File, error)
}

// ReportHandler exposes the printable reports and their file exports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler builds a new handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Global godoc
// @Summary Whole-programme overview report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/global [get]
func (h *ReportHandler) Global(c *gin.Context) {
	report, err := h.service.GlobalSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Module godoc
// @Summary Actual-vs-planned report for one course module
// @Tags Reports
// @Produce json
// @Param courseId path string true "Course id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/module/{courseId} [get]
func (h *ReportHandler) Module(c *gin.Context) {
	report, err := h.service.ModuleDetail(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Journal godoc
// @Summary Chronological journal report grouped by month
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/journal [get]
func (h *ReportHandler) Journal(c *gin.Context) {
	report, err := h.service.ChronologicalJournal(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// RequestExport godoc
// @Summary Queue a report file render
// @Tags Reports
// @Produce json
// @Param report query string true "Report kind (global, module, journal)"
// @Param format query string true "File format (csv, pdf)"
// @Param courseId query string false "Course id, required for the module report"
// @Success 202 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/export [post]
func (h *ReportHandler) RequestExport(c *gin.Context) {
	resp, err := h.service.RequestExport(c.Request.Context(), c.Query("report"), c.Query("format"), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, resp, nil)
}

// DownloadExport godoc
// @Summary Download a rendered report file
// @Tags Reports
// @Produce application/octet-stream
// @Param filename path string true "Export filename"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /reports/export/{filename} [get]
func (h *ReportHandler) DownloadExport(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || strings.Contains(filename, "..") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid export filename"))
		return
	}
	file, err := h.service.OpenExport(filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeContent(c.Writer, c.Request, filename, fileModTime(file), file)
}

func fileModTime(file *os.File) time.Time {
	if info, err := file.Stat(); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}
