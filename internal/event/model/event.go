// Package model provides domain models and DTOs for the event module.
package model

import (
	"time"

	playerModel "github.com/festy23/as_manager/internal/player/model"
)

// Event is a scheduled play session that players can join.
type Event struct {
	ID          int64      `gorm:"primaryKey;column:id" json:"id"`
	Name        string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
	StartTime   time.Time  `gorm:"column:start_time;not null;index:idx_events_start_time" json:"start_time"`
	EndTime     *time.Time `gorm:"column:end_time" json:"end_time"`
	CreatorID   *int64     `gorm:"column:creator" json:"creator_id"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// Upcoming reports whether the event has not started at now.
func (e Event) Upcoming(now time.Time) bool {
	return e.StartTime.After(now)
}

// EventMember records a player's participation in an event.
type EventMember struct {
	EventID   int64     `gorm:"primaryKey;column:event_id;autoIncrement:false" json:"event_id"`
	PlayerID  int64     `gorm:"primaryKey;column:player_id;autoIncrement:false" json:"player_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (EventMember) TableName() string {
	return "event_members"
}

// Details is an event with its creator and members.
type Details struct {
	Event   Event                `json:"event"`
	Creator *playerModel.Player  `json:"creator,omitempty"`
	Members []playerModel.Player `json:"members"`
}

// HasMember reports whether playerID takes part in the event.
func (d Details) HasMember(playerID int64) bool {
	for _, m := range d.Members {
		if m.ID == playerID {
			return true
		}
	}
	return false
}
