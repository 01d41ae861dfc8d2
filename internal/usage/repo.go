package usage

import (
	"context"
	"errors"
	"time"

	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for the API quota ledger and per-user
// request counters.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateAPIUsage(ctx context.Context, record *models.APIUsageRecord) error
	SumUnitsForDay(ctx context.Context, day time.Time) (int, error)
	UserUsageForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*models.UserUsageRecord, error)
	IncrementUserUsage(ctx context.Context, userID uuid.UUID, day time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a usage repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateAPIUsage(ctx context.Context, record *models.APIUsageRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) SumUnitsForDay(ctx context.Context, day time.Time) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.APIUsageRecord{}).
		Select("SUM(units_used)").
		Where("usage_date = ?", day).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *repository) UserUsageForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*models.UserUsageRecord, error) {
	var record models.UserUsageRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, day).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// IncrementUserUsage is an atomic increment-or-insert on (user_id, usage_date).
// A plain read-then-write pair would lose updates under concurrent requests
// from the same user, so this goes through the database's native upsert.
func (r *repository) IncrementUserUsage(ctx context.Context, userID uuid.UUID, day time.Time) error {
	record := &models.UserUsageRecord{
		ID:           uuid.New(),
		UserID:       userID,
		UsageDate:    day,
		RequestCount: 1,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"request_count": gorm.Expr("request_count + 1"),
				"updated_at":    time.Now(),
			}),
		}).
		Create(record).Error
}
