package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/culiplan/culiplan-api/internal/dto"
	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/export"
	"github.com/culiplan/culiplan-api/pkg/jobs"
)

// spanishMonths indexes month names the journal report groups by.
var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type reportProfileReader interface {
	SchoolInfo(ctx context.Context) (models.SchoolInfo, error)
	TeacherInfo(ctx context.Context) (models.TeacherInfo, error)
}

type reportFileStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ReportService builds the printable reports and renders them to CSV or
// PDF files through a background worker queue.
type ReportService struct {
	courses   dashboardCourseLister
	logs      trackingLogLister
	exams     trackingExamLister
	profiles  reportProfileReader
	files     reportFileStore
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	queue     *jobs.Queue[exportJobPayload]
	logger    *zap.Logger
	now       func() time.Time
	retention time.Duration
}

type ReportServiceParams struct {
	Courses     dashboardCourseLister
	Logs        trackingLogLister
	Exams       trackingExamLister
	Profiles    reportProfileReader
	Files       reportFileStore
	Logger      *zap.Logger
	Now         func() time.Time
	Concurrency int
	Retries     int
	Retention   time.Duration
}

type exportJobPayload struct {
	Filename string
	Format   string
	Report   string
	CourseID string
}

const (
	reportGlobal  = "global"
	reportModule  = "module"
	reportJournal = "journal"

	formatCSV = "csv"
	formatPDF = "pdf"
)

func NewReportService(params ReportServiceParams) *ReportService {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	retention := params.Retention
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	s := &ReportService{
		courses:   params.Courses,
		logs:      params.Logs,
		exams:     params.Exams,
		profiles:  params.Profiles,
		files:     params.Files,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		now:       now,
		retention: retention,
	}
	s.queue = jobs.NewQueue("report-export", s.handleExportJob, jobs.QueueConfig{
		Workers:    params.Concurrency,
		MaxRetries: params.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers and the retention sweep.
func (s *ReportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.sweepExpired(ctx)
}

// sweepExpired deletes export files older than the retention window.
func (s *ReportService) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.files.CleanupOlderThan(s.retention)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}

// Stop drains the export workers.
func (s *ReportService) Stop() {
	s.queue.Stop()
}

// GlobalSummary builds the whole-programme overview.
func (s *ReportService) GlobalSummary(ctx context.Context) (dto.GlobalSummaryReport, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return dto.GlobalSummaryReport{}, fmt.Errorf("list courses: %w", err)
	}
	logs, err := s.logs.List(ctx, models.ClassLogFilter{})
	if err != nil {
		return dto.GlobalSummaryReport{}, fmt.Errorf("list class logs: %w", err)
	}
	exams, err := s.exams.List(ctx)
	if err != nil {
		return dto.GlobalSummaryReport{}, fmt.Errorf("list exams: %w", err)
	}
	school, err := s.profiles.SchoolInfo(ctx)
	if err != nil {
		return dto.GlobalSummaryReport{}, fmt.Errorf("load school info: %w", err)
	}
	teacher, err := s.profiles.TeacherInfo(ctx)
	if err != nil {
		return dto.GlobalSummaryReport{}, fmt.Errorf("load teacher info: %w", err)
	}

	report := dto.GlobalSummaryReport{
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		School:      school,
		Teacher:     teacher,
		Courses:     len(courses),
		Rows:        make([]dto.GlobalSummaryRow, 0, len(courses)),
	}

	logCountByCourse := make(map[string]int, len(courses))
	for _, log := range logs {
		logCountByCourse[log.CourseID]++
	}

	for _, course := range courses {
		completed := 0
		for _, unit := range course.Units {
			report.TotalHoursPlanned += UnitPlannedTotal(unit)
			switch unit.Status {
			case models.UnitCompleted:
				completed++
			case models.UnitDelayed:
				report.UnitsDelayed++
			}
		}
		report.Units += len(course.Units)
		report.UnitsCompleted += completed

		completion := CompletionForCourse(course, logs, exams)
		report.TotalHoursLogged += completion.RealizedHours
		report.Rows = append(report.Rows, dto.GlobalSummaryRow{
			CourseID:       course.ID,
			CourseName:     course.Name,
			Units:          len(course.Units),
			UnitsCompleted: completed,
			Percent:        completion.Percent,
			LoggedHours:    completion.RealizedHours,
			LogEntries:     logCountByCourse[course.ID],
		})
	}
	return report, nil
}

// ModuleDetail builds the actual-vs-planned report for one course.
func (s *ReportService) ModuleDetail(ctx context.Context, courseID string) (dto.ModuleDetailReport, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return dto.ModuleDetailReport{}, fmt.Errorf("list courses: %w", err)
	}
	var course *models.Course
	for i := range courses {
		if courses[i].ID == courseID {
			course = &courses[i]
			break
		}
	}
	if course == nil {
		return dto.ModuleDetailReport{}, appErrors.ErrNotFound
	}

	logs, err := s.logs.List(ctx, models.ClassLogFilter{CourseID: courseID})
	if err != nil {
		return dto.ModuleDetailReport{}, fmt.Errorf("list class logs: %w", err)
	}
	allExams, err := s.exams.List(ctx)
	if err != nil {
		return dto.ModuleDetailReport{}, fmt.Errorf("list exams: %w", err)
	}
	courseExams := make([]models.Exam, 0, len(allExams))
	for _, exam := range allExams {
		if exam.CourseID == courseID {
			courseExams = append(courseExams, exam)
		}
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

	return dto.ModuleDetailReport{
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Course:      *course,
		Units:       units,
		Exams:       courseExams,
		Completion:  CompletionForCourse(*course, logs, courseExams),
	}, nil
}

// ChronologicalJournal lists every log grouped by year and Spanish month
// name, oldest first.
func (s *ReportService) ChronologicalJournal(ctx context.Context) (dto.ChronologicalJournalReport, error) {
	logs, err := s.logs.List(ctx, models.ClassLogFilter{})
	if err != nil {
		return dto.ChronologicalJournalReport{}, fmt.Errorf("list class logs: %w", err)
	}
	return dto.ChronologicalJournalReport{
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Months:      GroupLogsByMonth(logs),
	}, nil
}

// GroupLogsByMonth buckets logs into (year, month) groups in ascending
// chronological order. Logs with malformed dates are dropped.
func GroupLogsByMonth(logs []models.ClassLog) []dto.JournalMonth {
	type bucketKey struct {
		year  int
		month int
	}
	buckets := make(map[bucketKey][]models.ClassLog)
	for _, log := range logs {
		parsed, err := time.Parse(dateLayout, log.Date)
		if err != nil {
			continue
		}
		key := bucketKey{year: parsed.Year(), month: int(parsed.Month())}
		buckets[key] = append(buckets[key], log)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	months := make([]dto.JournalMonth, 0, len(keys))
	for _, key := range keys {
		group := buckets[key]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date < group[j].Date })
		months = append(months, dto.JournalMonth{
			Year:  key.year,
			Month: spanishMonths[key.month-1],
			Logs:  group,
		})
	}
	return months
}

// RequestExport queues a report file render and returns its filename.
func (s *ReportService) RequestExport(ctx context.Context, report, format, courseID string) (dto.ExportJobResponse, error) {
	switch report {
	case reportGlobal, reportJournal:
	case reportModule:
		if courseID == "" {
			return dto.ExportJobResponse{}, appErrors.Clone(appErrors.ErrValidation, "courseId is required for the module report")
		}
	default:
		return dto.ExportJobResponse{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown report %q", report))
	}
	if format != formatCSV && format != formatPDF {
		return dto.ExportJobResponse{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown format %q", format))
	}

	filename := fmt.Sprintf("informe_%s_%s.%s", report, s.now().UTC().Format("20060102_150405"), format)
	job := jobs.Job[exportJobPayload]{
		ID: uuid.NewString(),
		Payload: exportJobPayload{
			Filename: filename,
			Format:   format,
			Report:   report,
			CourseID: courseID,
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return dto.ExportJobResponse{}, fmt.Errorf("enqueue report export: %w", err)
	}
	return dto.ExportJobResponse{Filename: filename, Status: "queued"}, nil
}

// OpenExport returns the rendered file, or ErrExportNotReady while the
// worker has not produced it yet.
func (s *ReportService) OpenExport(filename string) (*os.File, error) {
	file, err := s.files.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.ErrExportNotReady
		}
		return nil, fmt.Errorf("open export %s: %w", filename, err)
	}
	return file, nil
}

func (s *ReportService) handleExportJob(ctx context.Context, job jobs.Job[exportJobPayload]) error {
	payload := job.Payload

	var (
		dataset export.Dataset
		title   string
		err     error
	)
	switch payload.Report {
	case reportGlobal:
		dataset, title, err = s.globalSummaryDataset(ctx)
	case reportModule:
		dataset, title, err = s.moduleDetailDataset(ctx, payload.CourseID)
	case reportJournal:
		dataset, title, err = s.journalDataset(ctx)
	default:
		return fmt.Errorf("unknown report %q", payload.Report)
	}
	if err != nil {
		return err
	}

	var rendered []byte
	if payload.Format == formatPDF {
		rendered, err = s.pdf.Render(dataset, title)
	} else {
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		return fmt.Errorf("render %s export: %w", payload.Format, err)
	}

	if _, err := s.files.Save(payload.Filename, rendered); err != nil {
		return fmt.Errorf("store export %s: %w", payload.Filename, err)
	}
	s.logger.Info("report export ready",
		zap.String("filename", payload.Filename),
		zap.String("report", payload.Report),
		zap.String("format", payload.Format),
	)
	return nil
}

func (s *ReportService) globalSummaryDataset(ctx context.Context) (export.Dataset, string, error) {
	report, err := s.GlobalSummary(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataset := export.Dataset{
		Headers: []string{"Módulo", "Unidades", "Completadas", "Progreso (%)", "Horas registradas", "Entradas de diario"},
	}
	for _, row := range report.Rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Módulo":             row.CourseName,
			"Unidades":           strconv.Itoa(row.Units),
			"Completadas":        strconv.Itoa(row.UnitsCompleted),
			"Progreso (%)":       strconv.Itoa(row.Percent),
			"Horas registradas":  strconv.Itoa(row.LoggedHours),
			"Entradas de diario": strconv.Itoa(row.LogEntries),
		})
	}
	return dataset, "Resumen global de programación", nil
}

func (s *ReportService) moduleDetailDataset(ctx context.Context, courseID string) (export.Dataset, string, error) {
	report, err := s.ModuleDetail(ctx, courseID)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataset := export.Dataset{
		Headers: []string{"Unidad", "Estado", "Teoría prevista", "Teoría impartida", "Práctica prevista", "Práctica impartida"},
	}
	for _, unit := range report.Units {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Unidad":             unit.Title,
			"Estado":             string(unit.Status),
			"Teoría prevista":    strconv.Itoa(unit.PlannedTheory),
			"Teoría impartida":   strconv.Itoa(unit.RealizedTheory),
			"Práctica prevista":  strconv.Itoa(unit.PlannedPractice),
			"Práctica impartida": strconv.Itoa(unit.RealizedPractice),
		})
	}
	return dataset, "Seguimiento de " + report.Course.Name, nil
}

func (s *ReportService) journalDataset(ctx context.Context) (export.Dataset, string, error) {
	report, err := s.ChronologicalJournal(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataset := export.Dataset{
		Headers: []string{"Fecha", "Mes", "Unidad", "Horas", "Tipo", "Estado", "Observaciones"},
	}
	for _, month := range report.Months {
		for _, log := range month.Logs {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Fecha":         log.Date,
				"Mes":           fmt.Sprintf("%s %d", month.Month, month.Year),
				"Unidad":        log.UnitID,
				"Horas":         strconv.Itoa(log.Hours),
				"Tipo":          string(log.Type),
				"Estado":        string(log.Status),
				"Observaciones": log.Notes,
			})
		}
	}
	return dataset, "Diario de clase cronológico", nil
}
