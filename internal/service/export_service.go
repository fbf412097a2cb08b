package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type backupCourseStore interface {
	List(ctx context.Context) ([]models.Course, error)
	ReplaceAll(ctx context.Context, courses []models.Course) error
}

type backupScheduleStore interface {
	List(ctx context.Context) ([]models.ScheduleSlot, error)
	ReplaceAll(ctx context.Context, slots []models.ScheduleSlot) error
}

type backupLogStore interface {
	List(ctx context.Context, filter models.ClassLogFilter) ([]models.ClassLog, error)
	ReplaceAll(ctx context.Context, logs []models.ClassLog) error
}

type backupExamStore interface {
	List(ctx context.Context) ([]models.Exam, error)
	ReplaceAll(ctx context.Context, exams []models.Exam) error
}

type backupEventStore interface {
	List(ctx context.Context) ([]models.CalendarEvent, error)
	ReplaceAll(ctx context.Context, events []models.CalendarEvent) error
}

type backupLegendStore interface {
	List(ctx context.Context) ([]models.LegendItem, error)
	ReplaceAll(ctx context.Context, items []models.LegendItem) error
}

// ExportService produces the ICS calendar file and the JSON backup, and
// restores state from an uploaded backup.
type ExportService struct {
	courses  backupCourseStore
	schedule backupScheduleStore
	logs     backupLogStore
	exams    backupExamStore
	events   backupEventStore
	legend   backupLegendStore
	profiles profileStore
	now      func() time.Time
}

type ExportServiceParams struct {
	Courses  backupCourseStore
	Schedule backupScheduleStore
	Logs     backupLogStore
	Exams    backupExamStore
	Events   backupEventStore
	Legend   backupLegendStore
	Profiles profileStore
	Now      func() time.Time
}

func NewExportService(params ExportServiceParams) *ExportService {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &ExportService{
		courses:  params.Courses,
		schedule: params.Schedule,
		logs:     params.Logs,
		exams:    params.Exams,
		events:   params.Events,
		legend:   params.Legend,
		profiles: params.Profiles,
		now:      now,
	}
}

const icsProdID = "-//CuliPlan//NONSGML v1.0//EN"

// AcademicYearStart parses the starting year out of a "2025-2026" style
// academic year label. It falls back to the current year when the label is
// missing or malformed.
func (s *ExportService) AcademicYearStart(academicYear string) int {
	parts := strings.SplitN(academicYear, "-", 2)
	if year, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && year > 1900 {
		return year
	}
	return s.now().Year()
}

// escapeICSText escapes the characters RFC 5545 reserves in text values.
func escapeICSText(value string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return replacer.Replace(value)
}

func icsDate(date string) (string, bool) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	return parsed.Format("20060102"), true
}

// BuildICS renders tagged calendar days and exams as all-day VEVENTs.
// Entries with malformed dates are skipped rather than corrupting the file.
func BuildICS(events []models.CalendarEvent, legend []models.LegendItem, exams []models.Exam, courses []models.Course) string {
	labels := make(map[string]string, len(legend))
	for _, item := range legend {
		labels[item.ID] = item.Label
	}
	courseNames := make(map[string]string, len(courses))
	for _, course := range courses {
		courseNames[course.ID] = course.Name
	}

	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:" + icsProdID)
	writeLine("CALSCALE:GREGORIAN")

	for _, event := range events {
		stamp, ok := icsDate(event.Date)
		if !ok {
			continue
		}
		label, ok := labels[event.LegendItemID]
		if !ok {
			continue
		}
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + event.ID + "@culiplan")
		writeLine("DTSTART;VALUE=DATE:" + stamp)
		writeLine("SUMMARY:" + escapeICSText(label))
		writeLine("END:VEVENT")
	}

	for _, exam := range exams {
		stamp, ok := icsDate(exam.Date)
		if !ok {
			continue
		}
		courseName := courseNames[exam.CourseID]
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + exam.ID + "@culiplan")
		writeLine("DTSTART;VALUE=DATE:" + stamp)
		writeLine("SUMMARY:" + escapeICSText(fmt.Sprintf("EXAMEN %s - %s", exam.Type, courseName)))
		if exam.Topics != "" {
			writeLine("DESCRIPTION:" + escapeICSText(exam.Topics))
		}
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return b.String()
}

// CalendarICS builds the school calendar export with its download name.
func (s *ExportService) CalendarICS(ctx context.Context) (filename string, data []byte, err error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list calendar events: %w", err)
	}
	legend, err := s.legend.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list legend items: %w", err)
	}
	exams, err := s.exams.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list exams: %w", err)
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list courses: %w", err)
	}
	school, err := s.profiles.SchoolInfo(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("load school info: %w", err)
	}

	startYear := s.AcademicYearStart(school.AcademicYear)
	filename = fmt.Sprintf("calendario_escolar_%d_%d.ics", startYear, startYear+1)
	return filename, []byte(BuildICS(events, legend, exams, courses)), nil
}

// BuildBackup snapshots the full application state.
func (s *ExportService) BuildBackup(ctx context.Context) (models.BackupDocument, error) {
	doc := models.BackupDocument{
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	school, err := s.profiles.SchoolInfo(ctx)
	if err != nil {
		return models.BackupDocument{}, fmt.Errorf("load school info: %w", err)
	}
	teacher, err := s.profiles.TeacherInfo(ctx)
	if err != nil {
		return models.BackupDocument{}, fmt.Errorf("load teacher info: %w", err)
	}
	doc.SchoolInfo = &school
	doc.TeacherInfo = &teacher

	if doc.Courses, err = s.courses.List(ctx); err != nil {
		return models.BackupDocument{}, fmt.Errorf("list courses: %w", err)
	}
	if doc.Schedule, err = s.schedule.List(ctx); err != nil {
		return models.BackupDocument{}, fmt.Errorf("list schedule slots: %w", err)
	}
	if doc.Logs, err = s.logs.List(ctx, models.ClassLogFilter{}); err != nil {
		return models.BackupDocument{}, fmt.Errorf("list class logs: %w", err)
	}
	if doc.CalendarEvents, err = s.events.List(ctx); err != nil {
		return models.BackupDocument{}, fmt.Errorf("list calendar events: %w", err)
	}
	if doc.Exams, err = s.exams.List(ctx); err != nil {
		return models.BackupDocument{}, fmt.Errorf("list exams: %w", err)
	}
	if doc.LegendItems, err = s.legend.List(ctx); err != nil {
		return models.BackupDocument{}, fmt.Errorf("list legend items: %w", err)
	}
	return doc, nil
}

// ImportBackup merges a backup into current state. Every collection
// present in the document replaces its counterpart wholesale; absent keys
// leave current data untouched.
func (s *ExportService) ImportBackup(ctx context.Context, doc models.BackupDocument) error {
	if doc.Timestamp == "" && doc.Courses == nil && doc.Schedule == nil && doc.Logs == nil &&
		doc.CalendarEvents == nil && doc.Exams == nil && doc.LegendItems == nil &&
		doc.SchoolInfo == nil && doc.TeacherInfo == nil {
		return appErrors.Clone(appErrors.ErrValidation, "backup document is empty")
	}

	if doc.SchoolInfo != nil {
		if err := s.profiles.SaveSchoolInfo(ctx, *doc.SchoolInfo); err != nil {
			return fmt.Errorf("restore school info: %w", err)
		}
	}
	if doc.TeacherInfo != nil {
		if err := s.profiles.SaveTeacherInfo(ctx, *doc.TeacherInfo); err != nil {
			return fmt.Errorf("restore teacher info: %w", err)
		}
	}
	if doc.Courses != nil {
		if err := s.courses.ReplaceAll(ctx, doc.Courses); err != nil {
			return fmt.Errorf("restore courses: %w", err)
		}
	}
	if doc.Schedule != nil {
		if err := s.schedule.ReplaceAll(ctx, doc.Schedule); err != nil {
			return fmt.Errorf("restore schedule: %w", err)
		}
	}
	if doc.Logs != nil {
		if err := s.logs.ReplaceAll(ctx, doc.Logs); err != nil {
			return fmt.Errorf("restore class logs: %w", err)
		}
	}
	if doc.LegendItems != nil {
		// Old backups predate the explicit flag; re-derive it so red or
		// festivo-style items keep blocking teaching days after restore.
		items := make([]models.LegendItem, len(doc.LegendItems))
		copy(items, doc.LegendItems)
		for i := range items {
			if !items[i].NonTeaching {
				items[i].NonTeaching = DeriveNonTeaching(items[i].Label, items[i].Color)
			}
		}
		if err := s.legend.ReplaceAll(ctx, items); err != nil {
			return fmt.Errorf("restore legend items: %w", err)
		}
	}
	if doc.CalendarEvents != nil {
		if err := s.events.ReplaceAll(ctx, doc.CalendarEvents); err != nil {
			return fmt.Errorf("restore calendar events: %w", err)
		}
	}
	if doc.Exams != nil {
		if err := s.exams.ReplaceAll(ctx, doc.Exams); err != nil {
			return fmt.Errorf("restore exams: %w", err)
		}
	}
	return nil
}
