// Package model provides domain models and DTOs for the platoon module.
package model

import (
	"time"

	playerModel "github.com/festy23/as_manager/internal/player/model"
)

// Platoon groups teams under a leader and a deputy leader.
type Platoon struct {
	ID             int64     `gorm:"primaryKey;column:id" json:"id"`
	Team           string    `gorm:"column:team;type:varchar(255);not null" json:"team"`
	Name           string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Motto          string    `gorm:"column:motto;type:text;not null" json:"motto"`
	LeaderID       *int64    `gorm:"column:leader_id" json:"leader_id"`
	DeputyLeaderID *int64    `gorm:"column:deputy_leader_id" json:"deputy_leader_id"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Platoon) TableName() string {
	return "platoons"
}

// PlatoonPlayer attaches a player without a team directly to a platoon.
type PlatoonPlayer struct {
	PlatoonID int64     `gorm:"primaryKey;column:platoon_id;autoIncrement:false" json:"platoon_id"`
	PlayerID  int64     `gorm:"primaryKey;column:player_id;autoIncrement:false" json:"player_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (PlatoonPlayer) TableName() string {
	return "platoon_player_without_team"
}

// TeamSummary is the subset of a team shown on a platoon page.
type TeamSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Details is a platoon with its teams and its players without team.
type Details struct {
	Platoon Platoon              `json:"platoon"`
	Leader  *playerModel.Player  `json:"leader,omitempty"`
	Deputy  *playerModel.Player  `json:"deputy_leader,omitempty"`
	Teams   []TeamSummary        `json:"teams"`
	Players []playerModel.Player `json:"players"`
}
