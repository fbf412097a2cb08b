package models

// ScheduleSlot is one recurring block in the teacher's weekly template. It is
// a template row, not a dated instance: DayOfWeek uses the ISO convention
// (1=Monday .. 7=Sunday). Slot order within a day is the insertion order of
// the template and the UI labels hours from it ("1ª hora", "2ª hora").
type ScheduleSlot struct {
	ID           string `db:"id" json:"-"`
	Position     int    `db:"position" json:"-"`
	DayOfWeek    int    `db:"day_of_week" json:"dayOfWeek"`
	StartTime    string `db:"start_time" json:"startTime"`
	EndTime      string `db:"end_time" json:"endTime"`
	CourseID     string `db:"course_id" json:"courseId"`
	DefaultHours int    `db:"default_hours" json:"defaultHours"`
	Label        string `db:"label" json:"label"`
}
