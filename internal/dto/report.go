package dto

import "github.com/culiplan/culiplan-api/internal/models"

// GlobalSummaryRow is one line of the per-course completion table.
type GlobalSummaryRow struct {
	CourseID       string `json:"courseId"`
	CourseName     string `json:"courseName"`
	Units          int    `json:"units"`
	UnitsCompleted int    `json:"unitsCompleted"`
	Percent        int    `json:"percent"`
	LoggedHours    int    `json:"loggedHours"`
	LogEntries     int    `json:"logEntries"`
}

// GlobalSummaryReport is the whole-programme overview report.
type GlobalSummaryReport struct {
	GeneratedAt       string             `json:"generatedAt"`
	School            models.SchoolInfo  `json:"school"`
	Teacher           models.TeacherInfo `json:"teacher"`
	Courses           int                `json:"courses"`
	Units             int                `json:"units"`
	UnitsCompleted    int                `json:"unitsCompleted"`
	UnitsDelayed      int                `json:"unitsDelayed"`
	TotalHoursPlanned int                `json:"totalHoursPlanned"`
	TotalHoursLogged  int                `json:"totalHoursLogged"`
	Rows              []GlobalSummaryRow `json:"rows"`
}

// ModuleDetailReport is the actual-vs-planned table for one course module
// plus its exam list.
type ModuleDetailReport struct {
	GeneratedAt string                 `json:"generatedAt"`
	Course      models.Course          `json:"course"`
	Units       []models.UnitProgress  `json:"units"`
	Exams       []models.Exam          `json:"exams"`
	Completion  models.CourseCompletion `json:"completion"`
}

// JournalMonth groups one calendar month of logs, oldest first.
type JournalMonth struct {
	Year  int               `json:"year"`
	Month string            `json:"month"`
	Logs  []models.ClassLog `json:"logs"`
}

// ChronologicalJournalReport lists every log grouped by year and localized
// month name, in ascending date order, ready for print.
type ChronologicalJournalReport struct {
	GeneratedAt string         `json:"generatedAt"`
	Months      []JournalMonth `json:"months"`
}

// ExportJobResponse acknowledges an asynchronous report file request.
type ExportJobResponse struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}
