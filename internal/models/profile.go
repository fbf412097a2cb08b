package models

// SchoolInfo holds the school identity shown on reports and exports.
// AcademicYear uses the "2025-2026" form; the calendar derives its
// September-to-June window from it.
type SchoolInfo struct {
	Name         string `json:"name"`
	LogoURL      string `json:"logoUrl"`
	AcademicYear string `json:"academicYear"`
	Department   string `json:"department"`
}

// TeacherInfo holds the teacher identity shown on reports.
type TeacherInfo struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}
