package models

import (
	"time"

	"github.com/google/uuid"
)

// Idea is a creator content idea. The idea lifecycle (creation, voting) is
// owned elsewhere; the research engine reads title, votes, and niche only.
type Idea struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Niche     *string   `gorm:"column:niche"`
	Votes     int       `gorm:"column:votes;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
