package model

import (
	"time"

	playerModel "github.com/festy23/as_manager/internal/player/model"
)

// Team is a group of players with an optional contact person and platoon.
// Its members are derived from players.team_id.
type Team struct {
	ID              int64     `gorm:"primaryKey;column:id" json:"id"`
	Name            string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	ContactPersonID *int64    `gorm:"column:contact_person_id" json:"contact_person_id"`
	PlatoonID       *int64    `gorm:"column:platoon_id;index:idx_teams_platoon_id" json:"platoon_id"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// HasContact reports whether playerID is the team's contact person.
func (t Team) HasContact(playerID int64) bool {
	return t.ContactPersonID != nil && *t.ContactPersonID == playerID
}

// Details is a team together with its current members.
type Details struct {
	Team    Team                 `json:"team"`
	Members []playerModel.Player `json:"members"`
}
