package models

// BackupDocument is the manual save/restore interchange file. Import is a
// partial merge: every key present replaces the matching collection
// wholesale, absent keys leave current state untouched. There is no schema
// versioning beyond presence checks.
type BackupDocument struct {
	Timestamp      string          `json:"timestamp"`
	SchoolInfo     *SchoolInfo     `json:"schoolInfo,omitempty"`
	TeacherInfo    *TeacherInfo    `json:"teacherInfo,omitempty"`
	Courses        []Course        `json:"courses,omitempty"`
	Schedule       []ScheduleSlot  `json:"schedule,omitempty"`
	Logs           []ClassLog      `json:"logs,omitempty"`
	CalendarEvents []CalendarEvent `json:"calendarEvents,omitempty"`
	Exams          []Exam          `json:"exams,omitempty"`
	LegendItems    []LegendItem    `json:"legendItems,omitempty"`
}
