package models

import "time"

// UnitStatus is the teacher-set delivery state of a teaching unit. It is
// never derived from logged hours.
type UnitStatus string

const (
	UnitPending    UnitStatus = "Pendiente"
	UnitInProgress UnitStatus = "En Progreso"
	UnitCompleted  UnitStatus = "Completado"
	UnitDelayed    UnitStatus = "Retrasado"
)

// Unit is a "unidad de trabajo" (UT) inside a course module.
type Unit struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	HoursPlannedTheory   int    `json:"hoursPlannedTheory"`
	HoursPlannedPractice int    `json:"hoursPlannedPractice"`
	// HoursRealized is a legacy field kept only so old backups keep
	// deserializing. Realized hours are always recomputed from class logs.
	HoursRealized int        `json:"hoursRealized"`
	Status        UnitStatus `json:"status"`

	// Trimestres holds the school terms (1..3) the unit spans. It must
	// never become empty.
	Trimestres []int `json:"trimestres"`
}

// CriterionLink ties an evaluation criterion to a teaching unit together with
// the assessment instruments used for it.
type CriterionLink struct {
	ID          string   `json:"id"`
	UnitID      string   `json:"utId"`
	Instruments []string `json:"instruments"`
}

// Criterion is a "criterio de evaluación" (CE) under a learning result.
// Ponderacion is descriptive; progress aggregation does not weight by it.
type Criterion struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Ponderacion float64         `json:"ponderacion"`
	ResultID    string          `json:"raId"`
	Links       []CriterionLink `json:"asociaciones"`
}

// LearningResult is a "resultado de aprendizaje" (RA).
type LearningResult struct {
	ID          string      `json:"id"`
	Codigo      string      `json:"codigo"`
	Descripcion string      `json:"descripcion"`
	Ponderacion float64     `json:"ponderacion"`
	Criterios   []Criterion `json:"criterios"`
}

// Course is a vocational course module. AnnualHours is the official target;
// the engine reports deviation from it but never enforces it.
type Course struct {
	ID              string           `db:"id" json:"id"`
	Name            string           `db:"name" json:"name"`
	Cycle           string           `db:"cycle" json:"cycle"`
	Grade           string           `db:"grade" json:"grade"`
	WeeklyHours     int              `db:"weekly_hours" json:"weeklyHours"`
	AnnualHours     int              `db:"annual_hours" json:"annualHours"`
	Color           string           `db:"color" json:"color,omitempty"`
	Units           []Unit           `json:"units"`
	LearningResults []LearningResult `json:"learningResults"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// UnitByID returns the unit with the given id, or nil when the reference is
// dangling (a tolerated state after deletions).
func (c *Course) UnitByID(id string) *Unit {
	for i := range c.Units {
		if c.Units[i].ID == id {
			return &c.Units[i]
		}
	}
	return nil
}
