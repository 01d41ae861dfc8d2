package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/creatorlift/creatorlift-backend/pkg/enums"
	"github.com/creatorlift/creatorlift-backend/pkg/types"
)

// ResearchSnapshot records one fetch attempt for an idea. Rows are immutable;
// every fetch inserts a new snapshot, successful or not.
type ResearchSnapshot struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	IdeaID         uuid.UUID            `gorm:"column:idea_id;type:uuid;not null;index"`
	QueryTerm      string               `gorm:"column:query_term;not null"`
	VideoCount     int                  `gorm:"column:video_count;not null;default:0"`
	AvgViews       int64                `gorm:"column:avg_views;not null;default:0"`
	MedianViews    int64                `gorm:"column:median_views;not null;default:0"`
	MaxViews       int64                `gorm:"column:max_views;not null;default:0"`
	AvgViewsPerDay float64              `gorm:"column:avg_views_per_day;not null;default:0"`
	UniqueChannels int                  `gorm:"column:unique_channels;not null;default:0"`
	TopChannels    types.ChannelStats   `gorm:"column:top_channels;type:jsonb"`
	RawResponse    json.RawMessage      `gorm:"column:raw_response;type:jsonb"`
	Status         enums.SnapshotStatus `gorm:"column:status;type:snapshot_status_enum;not null"`
	ErrorMessage   *string              `gorm:"column:error_message"`
	FetchedAt      time.Time            `gorm:"column:fetched_at;not null"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}
