package model

import "time"

// SaveEventRequest holds the editable fields of an event.
type SaveEventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// ListResponse wraps a list of events for the JSON API.
type ListResponse struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}
