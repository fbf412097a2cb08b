package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type stubCourseStore struct {
	courses []models.Course
	deleted []string
}

func (s *stubCourseStore) List(_ context.Context) ([]models.Course, error) {
	return s.courses, nil
}

func (s *stubCourseStore) FindByID(_ context.Context, id string) (*models.Course, error) {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return &s.courses[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = "course-created"
	s.courses = append(s.courses, *course)
	return nil
}

func (s *stubCourseStore) Update(_ context.Context, course *models.Course) error {
	for i := range s.courses {
		if s.courses[i].ID == course.ID {
			s.courses[i] = *course
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *stubCourseStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCascader struct{ courses []string }

func (s *stubCascader) DeleteByCourse(_ context.Context, courseID string) error {
	s.courses = append(s.courses, courseID)
	return nil
}

func newCourseService(store *stubCourseStore, logs, exams *stubCascader) *CourseService {
	return NewCourseService(CourseServiceParams{
		Courses: store,
		Logs:    logs,
		Exams:   exams,
	})
}

func validCourseRequest() dto.CourseRequest {
	return dto.CourseRequest{
		Name:        "Procesos de Cocina",
		AnnualHours: 350,
		Units: []models.Unit{
			{ID: "ut-1", Title: "Fondos y salsas", Trimestres: []int{1}},
		},
	}
}

func TestCourseCreateRejectsEmptyTrimestres(t *testing.T) {
	svc := newCourseService(&stubCourseStore{}, &stubCascader{}, &stubCascader{})

	req := validCourseRequest()
	req.Units[0].Trimestres = nil
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrEmptyTrimestres)
}

func TestCourseCreateRejectsTrimestreOutOfRange(t *testing.T) {
	svc := newCourseService(&stubCourseStore{}, &stubCascader{}, &stubCascader{})

	req := validCourseRequest()
	req.Units[0].Trimestres = []int{4}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCourseCreateToleratesNegativePlannedHours(t *testing.T) {
	store := &stubCourseStore{}
	svc := newCourseService(store, &stubCascader{}, &stubCascader{})

	req := validCourseRequest()
	req.Units[0].HoursPlannedTheory = -5
	req.Units[0].HoursPlannedPractice = -1
	course, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, -5, course.Units[0].HoursPlannedTheory)
	require.Len(t, store.courses, 1)
}

func TestCourseCreateAssignsID(t *testing.T) {
	store := &stubCourseStore{}
	svc := newCourseService(store, &stubCascader{}, &stubCascader{})

	course, err := svc.Create(context.Background(), validCourseRequest())
	require.NoError(t, err)
	assert.Equal(t, "course-created", course.ID)
	require.Len(t, store.courses, 1)
}

func TestCourseUpdateReplacesNestedSequences(t *testing.T) {
	store := &stubCourseStore{courses: []models.Course{
		{ID: "course-1", Name: "Procesos de Cocina", Units: []models.Unit{
			{ID: "ut-1", Trimestres: []int{1}},
			{ID: "ut-2", Trimestres: []int{2}},
		}},
	}}
	svc := newCourseService(store, &stubCascader{}, &stubCascader{})

	req := validCourseRequest()
	updated, err := svc.Update(context.Background(), "course-1", req)
	require.NoError(t, err)
	require.Len(t, updated.Units, 1)
	assert.Equal(t, "ut-1", updated.Units[0].ID)
}

func TestCourseDeleteRequiresConfirmation(t *testing.T) {
	store := &stubCourseStore{courses: []models.Course{{ID: "course-1"}}}
	svc := newCourseService(store, &stubCascader{}, &stubCascader{})

	err := svc.Delete(context.Background(), "course-1", false)
	assert.ErrorIs(t, err, appErrors.ErrConfirmationNeeded)
	assert.Empty(t, store.deleted)
}

func TestCourseDeleteCascadesLogsAndExams(t *testing.T) {
	store := &stubCourseStore{courses: []models.Course{{ID: "course-1"}}}
	logs := &stubCascader{}
	exams := &stubCascader{}
	svc := newCourseService(store, logs, exams)

	require.NoError(t, svc.Delete(context.Background(), "course-1", true))
	assert.Equal(t, []string{"course-1"}, logs.courses)
	assert.Equal(t, []string{"course-1"}, exams.courses)
	assert.Equal(t, []string{"course-1"}, store.deleted)
}

func TestCourseDeleteUnknownCourse(t *testing.T) {
	svc := newCourseService(&stubCourseStore{}, &stubCascader{}, &stubCascader{})
	err := svc.Delete(context.Background(), "missing", true)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseGetMapsNoRows(t *testing.T) {
	svc := newCourseService(&stubCourseStore{}, &stubCascader{}, &stubCascader{})
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
