package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type profileService interface {
	School(ctx context.Context) (models.SchoolInfo, error)
	SaveSchool(ctx context.Context, info models.SchoolInfo) error
	Teacher(ctx context.Context) (models.TeacherInfo, error)
	SaveTeacher(ctx context.Context, info models.TeacherInfo) error
}

// ProfileHandler exposes the school and teacher profiles.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler builds a new handler.
func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// School godoc
// @Summary Get the school profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /profile/school [get]
func (h *ProfileHandler) School(c *gin.Context) {
	info, err := h.service.School(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// SaveSchool godoc
// @Summary Replace the school profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body models.SchoolInfo true "School profile"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /profile/school [put]
func (h *ProfileHandler) SaveSchool(c *gin.Context) {
	var info models.SchoolInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid school profile"))
		return
	}
	if err := h.service.SaveSchool(c.Request.Context(), info); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// Teacher godoc
// @Summary Get the teacher profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /profile/teacher [get]
func (h *ProfileHandler) Teacher(c *gin.Context) {
	info, err := h.service.Teacher(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// SaveTeacher godoc
// @Summary Replace the teacher profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body models.TeacherInfo true "Teacher profile"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /profile/teacher [put]
func (h *ProfileHandler) SaveTeacher(c *gin.Context) {
	var info models.TeacherInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher profile"))
		return
	}
	if err := h.service.SaveTeacher(c.Request.Context(), info); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}
