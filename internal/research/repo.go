package research

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
)

// Repository manages research snapshots and idea scores. Snapshots are
// append-only history; scores are a one-row-per-idea upsert.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSnapshot(ctx context.Context, snapshot *models.ResearchSnapshot) error
	GetSnapshot(ctx context.Context, id uuid.UUID) (*models.ResearchSnapshot, error)
	LatestSnapshot(ctx context.Context, ideaID uuid.UUID) (*models.ResearchSnapshot, error)
	GetScore(ctx context.Context, ideaID uuid.UUID) (*models.IdeaScore, error)
	UpsertScore(ctx context.Context, score *models.IdeaScore) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a research repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSnapshot(ctx context.Context, snapshot *models.ResearchSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *repository) GetSnapshot(ctx context.Context, id uuid.UUID) (*models.ResearchSnapshot, error) {
	var snapshot models.ResearchSnapshot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *repository) LatestSnapshot(ctx context.Context, ideaID uuid.UUID) (*models.ResearchSnapshot, error) {
	var snapshot models.ResearchSnapshot
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("fetched_at DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *repository) GetScore(ctx context.Context, ideaID uuid.UUID) (*models.IdeaScore, error) {
	var score models.IdeaScore
	err := r.db.WithContext(ctx).Where("idea_id = ?", ideaID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// UpsertScore writes the score atomically keyed on idea_id. Re-scoring the
// same idea overwrites every computed column in place rather than growing a
// second row, so concurrent refreshes converge on a single current score.
func (r *repository) UpsertScore(ctx context.Context, score *models.IdeaScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "idea_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"snapshot_id":       score.SnapshotID,
				"demand_score":      score.DemandScore,
				"demand_label":      score.DemandLabel,
				"competition_score": score.CompetitionScore,
				"competition_label": score.CompetitionLabel,
				"opportunity_score": score.OpportunityScore,
				"opportunity_label": score.OpportunityLabel,
				"composite_label":   score.CompositeLabel,
				"explanation":       score.Explanation,
				"updated_at":        time.Now(),
			}),
		}).
		Create(score).Error
}
