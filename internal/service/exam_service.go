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

type examStore interface {
	List(ctx context.Context) ([]models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id string) error
}

type examCourseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// ExamService manages assessment sessions.
type ExamService struct {
	exams   examStore
	courses examCourseFinder
}

type ExamServiceParams struct {
	Exams   examStore
	Courses examCourseFinder
}

func NewExamService(params ExamServiceParams) *ExamService {
	return &ExamService{
		exams:   params.Exams,
		courses: params.Courses,
	}
}

// List returns every exam, soonest first.
func (s *ExamService) List(ctx context.Context) ([]models.Exam, error) {
	exams, err := s.exams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

func (s *ExamService) validate(ctx context.Context, req dto.ExamRequest) error {
	if ISOWeekday(req.Date) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("course %s does not exist", req.CourseID))
		}
		return fmt.Errorf("find course %s: %w", req.CourseID, err)
	}
	return nil
}

// Create stores a new exam.
func (s *ExamService) Create(ctx context.Context, req dto.ExamRequest) (models.Exam, error) {
	if err := s.validate(ctx, req); err != nil {
		return models.Exam{}, err
	}
	exam := models.Exam{
		Date:     req.Date,
		CourseID: req.CourseID,
		UnitIDs:  req.UnitIDs,
		Type:     req.Type,
		Duration: req.Duration,
		Topics:   req.Topics,
	}
	if err := s.exams.Create(ctx, &exam); err != nil {
		return models.Exam{}, fmt.Errorf("create exam: %w", err)
	}
	return exam, nil
}

// Update replaces an existing exam.
func (s *ExamService) Update(ctx context.Context, id string, req dto.ExamRequest) (models.Exam, error) {
	if err := s.validate(ctx, req); err != nil {
		return models.Exam{}, err
	}
	exam := models.Exam{
		ID:       id,
		Date:     req.Date,
		CourseID: req.CourseID,
		UnitIDs:  req.UnitIDs,
		Type:     req.Type,
		Duration: req.Duration,
		Topics:   req.Topics,
	}
	if err := s.exams.Update(ctx, &exam); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Exam{}, appErrors.ErrNotFound
		}
		return models.Exam{}, fmt.Errorf("update exam %s: %w", id, err)
	}
	return exam, nil
}

// Delete removes an exam.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if err := s.exams.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete exam %s: %w", id, err)
	}
	return nil
}
