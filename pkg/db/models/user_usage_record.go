package models

import (
	"time"

	"github.com/google/uuid"
)

// UserUsageRecord counts research requests per user per day. At most one row
// exists per (user_id, usage_date); subsequent requests increment it in place.
type UserUsageRecord struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_usage_user_day"`
	UsageDate    time.Time `gorm:"column:usage_date;type:date;not null;uniqueIndex:idx_user_usage_user_day"`
	RequestCount int       `gorm:"column:request_count;not null;default:1"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
