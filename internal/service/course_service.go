package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type courseStore interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type courseLogCascader interface {
	DeleteByCourse(ctx context.Context, courseID string) error
}

type courseExamCascader interface {
	DeleteByCourse(ctx context.Context, courseID string) error
}

type dashboardInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// CourseService manages course modules with their nested units and
// learning results.
type CourseService struct {
	courses courseStore
	logs    courseLogCascader
	exams   courseExamCascader
	cache   dashboardInvalidator
}

type CourseServiceParams struct {
	Courses courseStore
	Logs    courseLogCascader
	Exams   courseExamCascader
	Cache   dashboardInvalidator
}

func NewCourseService(params CourseServiceParams) *CourseService {
	return &CourseService{
		courses: params.Courses,
		logs:    params.Logs,
		exams:   params.Exams,
		cache:   params.Cache,
	}
}

// validateUnits enforces the structural rules on the nested sequences.
// Planned hours are deliberately not range-checked; the aggregation layer
// tolerates odd values and only reports deviation.
func validateUnits(units []models.Unit) error {
	for i := range units {
		if len(units[i].Trimestres) == 0 {
			return appErrors.ErrEmptyTrimestres
		}
		for _, trimestre := range units[i].Trimestres {
			if trimestre < 1 || trimestre > 3 {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unit %s: trimestre %d out of range", units[i].ID, trimestre))
			}
		}
	}
	return nil
}

// List returns every course in creation order.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Get returns one course by id.
func (s *CourseService) Get(ctx context.Context, id string) (models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Course{}, appErrors.ErrNotFound
		}
		return models.Course{}, fmt.Errorf("find course %s: %w", id, err)
	}
	return *course, nil
}

// Create stores a new course module.
func (s *CourseService) Create(ctx context.Context, req dto.CourseRequest) (models.Course, error) {
	if err := validateUnits(req.Units); err != nil {
		return models.Course{}, err
	}
	course := models.Course{
		Name:            req.Name,
		Cycle:           req.Cycle,
		Grade:           req.Grade,
		WeeklyHours:     req.WeeklyHours,
		AnnualHours:     req.AnnualHours,
		Color:           req.Color,
		Units:           req.Units,
		LearningResults: req.LearningResults,
	}
	if err := s.courses.Create(ctx, &course); err != nil {
		return models.Course{}, fmt.Errorf("create course: %w", err)
	}
	s.invalidateDashboard(ctx)
	return course, nil
}

// Update replaces a course wholesale, nested sequences included.
func (s *CourseService) Update(ctx context.Context, id string, req dto.CourseRequest) (models.Course, error) {
	if err := validateUnits(req.Units); err != nil {
		return models.Course{}, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	existing.Name = req.Name
	existing.Cycle = req.Cycle
	existing.Grade = req.Grade
	existing.WeeklyHours = req.WeeklyHours
	existing.AnnualHours = req.AnnualHours
	existing.Color = req.Color
	existing.Units = req.Units
	existing.LearningResults = req.LearningResults
	if err := s.courses.Update(ctx, &existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Course{}, appErrors.ErrNotFound
		}
		return models.Course{}, fmt.Errorf("update course %s: %w", id, err)
	}
	s.invalidateDashboard(ctx)
	return existing, nil
}

// Delete removes a course together with its logs and exams. The confirm
// flag must be set: deleting a module erases its whole journal history.
func (s *CourseService) Delete(ctx context.Context, id string, confirm bool) error {
	if !confirm {
		return appErrors.ErrConfirmationNeeded
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.logs.DeleteByCourse(ctx, id); err != nil {
		return fmt.Errorf("cascade logs for course %s: %w", id, err)
	}
	if err := s.exams.DeleteByCourse(ctx, id); err != nil {
		return fmt.Errorf("cascade exams for course %s: %w", id, err)
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *CourseService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "dashboard:*")
}
