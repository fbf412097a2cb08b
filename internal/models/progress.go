package models

// Derived-statistics payloads. These are outputs of the aggregation engine,
// never stored; every value is recomputed from the entity collections.

// CourseCompletion reports a course's realized hours against its official
// annual target.
type CourseCompletion struct {
	RealizedHours int `json:"realizedHours"`
	// Percent is clamped to [0,100] for display.
	Percent int `json:"percent"`
	// RawRatio keeps the unclamped realized/annual ratio; a value above 1
	// means the official hours were exceeded.
	RawRatio float64 `json:"rawRatio"`
	Exceeded bool    `json:"exceeded"`
	// PlannedHours sums the planned hours of every unit. When it exceeds
	// AnnualHours the plan itself overshoots the official target by
	// PlannedOverage.
	PlannedHours   int `json:"plannedHours"`
	PlannedOverage int `json:"plannedOverage"`
}

// EffortBreakdown splits a course's realized hours by origin.
type EffortBreakdown struct {
	Theory   int `json:"theory"`
	Practice int `json:"practice"`
	Exams    int `json:"exams"`
	Total    int `json:"total"`
}

// LearningResultProgress reports hour coverage for one RA through the units
// its criteria link to. The percentage is coverage by linked hours; criterion
// ponderación does not weight it.
type LearningResultProgress struct {
	ResultID      string   `json:"resultId"`
	Codigo        string   `json:"codigo"`
	UnitIDs       []string `json:"unitIds"`
	PlannedHours  int      `json:"plannedHours"`
	RealizedHours int      `json:"realizedHours"`
	Percent       int      `json:"percent"`
	// Linked is false when no criterion references any unit; the UI flags
	// those results as "sin vincular".
	Linked bool `json:"linked"`
}

// UnitProgress pairs a unit's planned hours with its recomputed realized
// hours, split by session type.
type UnitProgress struct {
	UnitID           string     `json:"unitId"`
	Title            string     `json:"title"`
	Status           UnitStatus `json:"status"`
	PlannedTheory    int        `json:"plannedTheory"`
	PlannedPractice  int        `json:"plannedPractice"`
	RealizedTheory   int        `json:"realizedTheory"`
	RealizedPractice int        `json:"realizedPractice"`
}
