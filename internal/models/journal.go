package models

import "time"

// SessionType classifies a logged hour block.
type SessionType string

const (
	SessionTheory   SessionType = "Teórica"
	SessionPractice SessionType = "Práctica"
)

// AttendanceStatus records what actually happened in a logged session.
type AttendanceStatus string

const (
	AttendanceDelivered      AttendanceStatus = "Impartida"
	AttendanceTeacherAbsent  AttendanceStatus = "Falta Profesor"
	AttendanceStudentsAbsent AttendanceStatus = "Falta Alumnos"
	AttendanceOtherIncident  AttendanceStatus = "Otras Incidencias"
)

// ClassLog is one delivered (or missed) block of hours in the daily journal.
// Several logs may share a date and course; a single save splits a mixed
// session into one theory row and one practice row.
type ClassLog struct {
	ID        string           `db:"id" json:"id"`
	Date      string           `db:"log_date" json:"date"`
	CourseID  string           `db:"course_id" json:"courseId"`
	UnitID    string           `db:"unit_id" json:"unitId"`
	Hours     int              `db:"hours" json:"hours"`
	Type      SessionType      `db:"session_type" json:"type"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     string           `db:"notes" json:"notes"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// ClassLogFilter narrows journal queries.
type ClassLogFilter struct {
	Date     string
	CourseID string
	UnitID   string
	FromDate string
	ToDate   string
}
