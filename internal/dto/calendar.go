package dto

import "github.com/culiplan/culiplan-api/internal/models"

// LegendItemRequest creates or updates a legend entry. NonTeaching is a
// pointer so omitting it lets the server derive the flag from the legacy
// color/label heuristic.
type LegendItemRequest struct {
	Label       string `json:"label" binding:"required"`
	Color       string `json:"color" binding:"required"`
	NonTeaching *bool  `json:"nonTeaching"`
}

// ToggleEventRequest adds or removes a (date, legend item) tag.
type ToggleEventRequest struct {
	Date         string `json:"date" binding:"required"`
	LegendItemID string `json:"legendItemId" binding:"required"`
}

// ToggleEventResponse reports what the toggle did.
type ToggleEventResponse struct {
	Added bool                  `json:"added"`
	Event *models.CalendarEvent `json:"event,omitempty"`
}

// DayStatusRangeResponse carries tracking states for a date range.
type DayStatusRangeResponse struct {
	From string             `json:"from"`
	To   string             `json:"to"`
	Days []models.DayStatus `json:"days"`
}
