package models

// LegendItem defines the meaning and color of a calendar tag.
type LegendItem struct {
	ID    string `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
	Color string `db:"color" json:"color"`
	// NonTeaching marks days tagged with this item as free of lessons.
	// Legacy backups lack the flag; import derives it once from the old
	// color/label heuristic.
	NonTeaching bool `db:"non_teaching" json:"nonTeaching"`
}

// CalendarEvent applies a legend tag to one specific date.
type CalendarEvent struct {
	ID           string `db:"id" json:"id"`
	Date         string `db:"event_date" json:"date"`
	LegendItemID string `db:"legend_item_id" json:"legendItemId"`
}

// Legacy heuristic carried over from the original calendar: red items and
// labels mentioning festivo/inicio were treated as non-teaching days.
const HolidayColor = "#DC2626"

// DayTrackingStatus is the reconciliation state of one calendar date.
type DayTrackingStatus string

const (
	DayFree      DayTrackingStatus = "FREE"
	DayMissing   DayTrackingStatus = "MISSING"
	DayPartial   DayTrackingStatus = "PARTIAL"
	DayCompleted DayTrackingStatus = "COMPLETED"
)

// DayStatus reports planned versus logged hours for a date.
type DayStatus struct {
	Date    string            `json:"date"`
	Status  DayTrackingStatus `json:"status"`
	Planned int               `json:"planned"`
	Logged  int               `json:"logged"`
}
