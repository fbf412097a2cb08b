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

type progressCourseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// ProgressService recomputes the programación view for a course from its
// journal. Nothing here reads cached hour counters.
type ProgressService struct {
	courses progressCourseFinder
	logs    trackingLogLister
	exams   trackingExamLister
}

type ProgressServiceParams struct {
	Courses progressCourseFinder
	Logs    trackingLogLister
	Exams   trackingExamLister
}

func NewProgressService(params ProgressServiceParams) *ProgressService {
	return &ProgressService{
		courses: params.Courses,
		logs:    params.Logs,
		exams:   params.Exams,
	}
}

// ForCourse assembles per-unit, per-RA and whole-course progress.
func (s *ProgressService) ForCourse(ctx context.Context, courseID string) (dto.CourseProgressResponse, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.CourseProgressResponse{}, appErrors.ErrNotFound
		}
		return dto.CourseProgressResponse{}, fmt.Errorf("find course %s: %w", courseID, err)
	}
	logs, err := s.logs.List(ctx, models.ClassLogFilter{CourseID: courseID})
	if err != nil {
		return dto.CourseProgressResponse{}, fmt.Errorf("list class logs: %w", err)
	}
	exams, err := s.exams.List(ctx)
	if err != nil {
		return dto.CourseProgressResponse{}, fmt.Errorf("list exams: %w", err)
	}

	units := make([]models.UnitProgress, 0, len(course.Units))
	for _, unit := range course.Units {
		theory, practice := UnitRealizedByType(unit.ID, logs)
		units = append(units, models.UnitProgress{
			UnitID:           unit.ID,
			Title:            unit.Title,
			Status:           unit.Status,
			PlannedTheory:    unit.HoursPlannedTheory,
			PlannedPractice:  unit.HoursPlannedPractice,
			RealizedTheory:   theory,
			RealizedPractice: practice,
		})
	}

	results := make([]models.LearningResultProgress, 0, len(course.LearningResults))
	for _, ra := range course.LearningResults {
		results = append(results, ProgressForLearningResult(ra, course.Units, logs))
	}

	return dto.CourseProgressResponse{
		Course:     *course,
		Units:      units,
		Results:    results,
		Completion: CompletionForCourse(*course, logs, exams),
		Effort:     EffortForCourse(course.ID, logs, exams),
	}, nil
}
