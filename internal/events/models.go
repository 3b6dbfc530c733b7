package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string      `json:"name" gorm:"not null;size:255"`
	Venue     string      `json:"venue" gorm:"not null;size:255"`
	StartsAt  time.Time   `json:"starts_at" gorm:"not null;index"`
	Status    EventStatus `json:"status" gorm:"type:varchar(20);default:'UPCOMING'"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Venue    string      `json:"venue"`
	StartsAt time.Time   `json:"starts_at"`
	Status   EventStatus `json:"status"`
}

// ToResponse converts an Event to its API shape
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:       e.ID.String(),
		Name:     e.Name,
		Venue:    e.Venue,
		StartsAt: e.StartsAt,
		Status:   e.Status,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
