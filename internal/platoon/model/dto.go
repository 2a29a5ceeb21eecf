package model

// SavePlatoonRequest holds the editable fields of a platoon.
type SavePlatoonRequest struct {
	Team           string `json:"team"`
	Name           string `json:"name"`
	Motto          string `json:"motto"`
	LeaderID       *int64 `json:"leader_id"`
	DeputyLeaderID *int64 `json:"deputy_leader_id"`
}

// ListResponse wraps a list of platoons for the JSON API.
type ListResponse struct {
	Platoons []Platoon `json:"platoons"`
	Total    int       `json:"total"`
}
