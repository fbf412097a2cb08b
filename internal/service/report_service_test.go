package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/jobs"
)

type tempFileStore struct{ dir string }

func (s *tempFileStore) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *tempFileStore) Open(filename string) (*os.File, error) {
	file, err := os.Open(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	return file, nil
}

func (s *tempFileStore) CleanupOlderThan(time.Duration) ([]string, error) {
	return nil, nil
}

type stubProfileReader struct {
	school  models.SchoolInfo
	teacher models.TeacherInfo
}

func (s *stubProfileReader) SchoolInfo(_ context.Context) (models.SchoolInfo, error) {
	return s.school, nil
}

func (s *stubProfileReader) TeacherInfo(_ context.Context) (models.TeacherInfo, error) {
	return s.teacher, nil
}

func newReportService(t *testing.T, courses []models.Course, logs []models.ClassLog, exams []models.Exam) *ReportService {
	t.Helper()
	return NewReportService(ReportServiceParams{
		Courses:  &stubCourseLister{courses: courses},
		Logs:     &stubLogLister{logs: logs},
		Exams:    &stubExamLister{exams: exams},
		Profiles: &stubProfileReader{school: models.SchoolInfo{Name: "IES Hostelería"}},
		Files:    &tempFileStore{dir: t.TempDir()},
		Now:      fixedNow,
	})
}

func TestGroupLogsByMonthOrdersChronologically(t *testing.T) {
	months := GroupLogsByMonth([]models.ClassLog{
		{ID: "log-mar", Date: "2026-03-02", Hours: 1},
		{ID: "log-sep", Date: "2025-09-10", Hours: 2},
		{ID: "log-sep-2", Date: "2025-09-08", Hours: 1},
		{ID: "log-dec", Date: "2025-12-15", Hours: 3},
		{ID: "log-bad", Date: "no es fecha", Hours: 9},
	})

	require.Len(t, months, 3)
	assert.Equal(t, 2025, months[0].Year)
	assert.Equal(t, "Septiembre", months[0].Month)
	assert.Equal(t, "Diciembre", months[1].Month)
	assert.Equal(t, 2026, months[2].Year)
	assert.Equal(t, "Marzo", months[2].Month)

	// Inside a month logs sort by date ascending.
	require.Len(t, months[0].Logs, 2)
	assert.Equal(t, "log-sep-2", months[0].Logs[0].ID)
}

func TestGlobalSummaryAggregatesPerCourse(t *testing.T) {
	svc := newReportService(t,
		[]models.Course{{
			ID:          "course-1",
			Name:        "Procesos de Cocina",
			AnnualHours: 100,
			Units: []models.Unit{
				{ID: "ut-1", HoursPlannedTheory: 30, HoursPlannedPractice: 30, Status: models.UnitCompleted, Trimestres: []int{1}},
				{ID: "ut-2", HoursPlannedTheory: 20, HoursPlannedPractice: 20, Status: models.UnitDelayed, Trimestres: []int{2}},
			},
		}},
		[]models.ClassLog{
			{ID: "log-1", Date: "2025-10-01", CourseID: "course-1", UnitID: "ut-1", Hours: 10},
			{ID: "log-2", Date: "2025-10-02", CourseID: "course-1", UnitID: "ut-1", Hours: 15},
		},
		nil,
	)

	report, err := svc.GlobalSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "IES Hostelería", report.School.Name)
	assert.Equal(t, 1, report.Courses)
	assert.Equal(t, 2, report.Units)
	assert.Equal(t, 1, report.UnitsCompleted)
	assert.Equal(t, 1, report.UnitsDelayed)
	assert.Equal(t, 100, report.TotalHoursPlanned)
	assert.Equal(t, 25, report.TotalHoursLogged)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 25, report.Rows[0].Percent)
	assert.Equal(t, 2, report.Rows[0].LogEntries)
}

func TestModuleDetailUnknownCourse(t *testing.T) {
	svc := newReportService(t, nil, nil, nil)
	_, err := svc.ModuleDetail(context.Background(), "missing")
	require.Error(t, err)
}

func TestModuleDetailFiltersExamsByCourse(t *testing.T) {
	svc := newReportService(t,
		[]models.Course{{ID: "course-1", Name: "Procesos de Cocina", Units: []models.Unit{
			{ID: "ut-1", Title: "Fondos", HoursPlannedTheory: 10, Trimestres: []int{1}},
		}}},
		[]models.ClassLog{{Date: "2025-10-01", CourseID: "course-1", UnitID: "ut-1", Hours: 4, Type: models.SessionTheory}},
		[]models.Exam{
			{ID: "ex-1", Date: "2025-11-01", CourseID: "course-1"},
			{ID: "ex-2", Date: "2025-11-01", CourseID: "course-2"},
		},
	)

	report, err := svc.ModuleDetail(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, report.Exams, 1)
	assert.Equal(t, "ex-1", report.Exams[0].ID)
	require.Len(t, report.Units, 1)
	assert.Equal(t, 4, report.Units[0].RealizedTheory)
}

func TestRequestExportValidatesInput(t *testing.T) {
	svc := newReportService(t, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.RequestExport(ctx, "global", "xlsx", "")
	require.Error(t, err)

	_, err = svc.RequestExport(ctx, "weekly", "csv", "")
	require.Error(t, err)

	_, err = svc.RequestExport(ctx, "module", "csv", "")
	require.Error(t, err)
}

func TestHandleExportJobRendersCSV(t *testing.T) {
	files := &tempFileStore{dir: t.TempDir()}
	svc := NewReportService(ReportServiceParams{
		Courses: &stubCourseLister{courses: []models.Course{{
			ID: "course-1", Name: "Procesos de Cocina", AnnualHours: 100,
			Units: []models.Unit{{ID: "ut-1", HoursPlannedTheory: 10, Trimestres: []int{1}}},
		}}},
		Logs:     &stubLogLister{},
		Exams:    &stubExamLister{},
		Profiles: &stubProfileReader{},
		Files:    files,
		Now:      fixedNow,
	})

	err := svc.handleExportJob(context.Background(), jobs.Job[exportJobPayload]{
		ID: "job-1",
		Payload: exportJobPayload{
			Filename: "informe_global_test.csv",
			Format:   formatCSV,
			Report:   reportGlobal,
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(files.dir, "informe_global_test.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Procesos de Cocina")
}

func TestOpenExportNotReady(t *testing.T) {
	svc := newReportService(t, nil, nil, nil)
	_, err := svc.OpenExport("informe_global_19990101_000000.csv")
	assert.ErrorIs(t, err, appErrors.ErrExportNotReady)
}

func TestRequestExportQueued(t *testing.T) {
	svc := newReportService(t, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	resp, err := svc.RequestExport(ctx, "global", "csv", "")
	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)
	assert.Contains(t, resp.Filename, "informe_global_")

	// Give the worker a moment; the render itself is covered separately.
	time.Sleep(50 * time.Millisecond)
}
