package model

// CreatePlayerRequest holds the fields accepted when creating a player.
// Password may be empty for players created by an organizer; such players
// cannot log in until a password is set.
type CreatePlayerRequest struct {
	Email    string `json:"email"              binding:"required,email,max=255"`
	TagName  string `json:"tag_name"           binding:"required,max=255"`
	Password string `json:"password,omitempty"`
}

// UpdatePlayerRequest is a full-row update of a player's editable fields.
type UpdatePlayerRequest struct {
	Email   string `json:"email"    binding:"required,email,max=255"`
	TagName string `json:"tag_name" binding:"required,max=255"`
	Active  bool   `json:"active"`
	TeamID  *int64 `json:"team_id"  binding:"omitempty,gt=0"`
}

// ListResponse wraps a list of players for the JSON API.
type ListResponse struct {
	Players []Player `json:"players"`
	Total   int      `json:"total"`
}
