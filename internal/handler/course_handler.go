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

type courseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, req dto.CourseRequest) (models.Course, error)
	Update(ctx context.Context, id string, req dto.CourseRequest) (models.Course, error)
	Delete(ctx context.Context, id string, confirm bool) error
}

type progressService interface {
	ForCourse(ctx context.Context, courseID string) (dto.CourseProgressResponse, error)
}

// CourseHandler exposes course module endpoints.
type CourseHandler struct {
	courses  courseService
	progress progressService
}

// NewCourseHandler builds a new handler.
func NewCourseHandler(courses courseService, progress progressService) *CourseHandler {
	return &CourseHandler{courses: courses, progress: progress}
}

// List godoc
// @Summary List course modules
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Get godoc
// @Summary Get one course module
// @Tags Courses
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create a course module
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Replace a course module
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course id"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete a course module and its journal history
// @Tags Courses
// @Produce json
// @Param id path string true "Course id"
// @Param confirm query bool true "Must be true; deletion erases all related logs and exams"
// @Success 204
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	confirm := c.Query("confirm") == "true"
	if err := h.courses.Delete(c.Request.Context(), c.Param("id"), confirm); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Progress godoc
// @Summary Course progress recomputed from the journal
// @Tags Courses
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/progress [get]
func (h *CourseHandler) Progress(c *gin.Context) {
	progress, err := h.progress.ForCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
