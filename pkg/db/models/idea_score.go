package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creatorlift/creatorlift-backend/pkg/enums"
	"github.com/creatorlift/creatorlift-backend/pkg/types"
)

// IdeaScore is the single current score for an idea, upserted on idea_id.
// Snapshots accumulate history; the score always points at the snapshot it
// was computed from.
type IdeaScore struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	IdeaID           uuid.UUID              `gorm:"column:idea_id;type:uuid;not null;uniqueIndex"`
	SnapshotID       *uuid.UUID             `gorm:"column:snapshot_id;type:uuid"`
	DemandScore      int                    `gorm:"column:demand_score;not null"`
	DemandLabel      enums.ScoreLabel       `gorm:"column:demand_label;not null"`
	CompetitionScore int                    `gorm:"column:competition_score;not null"`
	CompetitionLabel enums.ScoreLabel       `gorm:"column:competition_label;not null"`
	OpportunityScore int                    `gorm:"column:opportunity_score;not null"`
	OpportunityLabel enums.OpportunityLabel `gorm:"column:opportunity_label;not null"`
	CompositeLabel   enums.CompositeLabel   `gorm:"column:composite_label;not null"`
	Explanation      types.Explanation      `gorm:"column:explanation;type:jsonb"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
