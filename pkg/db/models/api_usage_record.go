package models

import (
	"time"

	"github.com/google/uuid"
)

// APIUsageRecord is an append-only row tracking YouTube API cost units. Rows
// are never mutated; the daily total is the sum over today's rows.
type APIUsageRecord struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UsageDate    time.Time `gorm:"column:usage_date;type:date;not null;index"`
	UnitsUsed    int       `gorm:"column:units_used;not null"`
	RequestCount int       `gorm:"column:request_count;not null;default:1"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
