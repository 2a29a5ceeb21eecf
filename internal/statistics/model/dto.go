// Package model provides data transfer objects for statistics module.
package model

// TeamSize is the number of members of a team.
type TeamSize struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	Members  int    `json:"members"`
}

// Counts holds the roster totals.
type Counts struct {
	TotalPlayers       int `json:"total_players"`
	ActivePlayers      int `json:"active_players"`
	PlayersWithoutTeam int `json:"players_without_team"`
	Teams              int `json:"teams"`
	Platoons           int `json:"platoons"`
	UpcomingEvents     int `json:"upcoming_events"`
}

// Summary is the roster overview shown on the dashboard.
type Summary struct {
	Counts
	TeamSizes []TeamSize `json:"team_sizes"`
}
