// Package model provides domain models and DTOs for the player module.
package model

import "time"

// Player is a clan member. ID is zero until the row is persisted.
type Player struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_players_email" json:"email"`
	TagName      string    `gorm:"column:tag_name;type:varchar(255);not null;uniqueIndex:idx_players_tag_name" json:"tag_name"`
	Active       bool      `gorm:"column:active;not null" json:"active"`
	TeamID       *int64    `gorm:"column:team_id;index:idx_players_team_id" json:"team_id"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}

// CanLogIn reports whether the player has credentials set.
func (p Player) CanLogIn() bool {
	return p.PasswordHash != ""
}

// InTeam reports whether the player belongs to the given team.
func (p Player) InTeam(teamID int64) bool {
	return p.TeamID != nil && *p.TeamID == teamID
}
