package usage

import (
	"context"
	"testing"
	"time"

	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsageTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	apiUsage := `
CREATE TABLE IF NOT EXISTS api_usage_records (
  id TEXT PRIMARY KEY,
  usage_date DATETIME NOT NULL,
  units_used INTEGER NOT NULL,
  request_count INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	userUsage := `
CREATE TABLE IF NOT EXISTS user_usage_records (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  usage_date DATETIME NOT NULL,
  request_count INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, usage_date)
);`
	require.NoError(t, db.Exec(apiUsage).Error)
	require.NoError(t, db.Exec(userUsage).Error)
	return db
}

func TestSumUnitsForDay(t *testing.T) {
	db := setupUsageTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	today := startOfDay(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	for _, units := range []int{100, 1, 100, 1} {
		require.NoError(t, repo.CreateAPIUsage(ctx, &models.APIUsageRecord{
			ID:           uuid.New(),
			UsageDate:    today,
			UnitsUsed:    units,
			RequestCount: 1,
		}))
	}
	// A row from yesterday must not leak into today's total.
	require.NoError(t, repo.CreateAPIUsage(ctx, &models.APIUsageRecord{
		ID:           uuid.New(),
		UsageDate:    yesterday,
		UnitsUsed:    5000,
		RequestCount: 1,
	}))

	total, err := repo.SumUnitsForDay(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 202, total)

	past, err := repo.SumUnitsForDay(ctx, yesterday)
	require.NoError(t, err)
	assert.Equal(t, 5000, past)
}

func TestSumUnitsForDayEmpty(t *testing.T) {
	db := setupUsageTestDB(t)
	repo := NewRepository(db)

	total, err := repo.SumUnitsForDay(context.Background(), startOfDay(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestIncrementUserUsageUpserts(t *testing.T) {
	db := setupUsageTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	today := startOfDay(time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementUserUsage(ctx, userID, today))
	}

	record, err := repo.UserUsageForDay(ctx, userID, today)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 3, record.RequestCount)

	var count int64
	require.NoError(t, db.Model(&models.UserUsageRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must never create a second row for the same day")
}

func TestUserUsageForDayAbsent(t *testing.T) {
	db := setupUsageTestDB(t)
	repo := NewRepository(db)

	record, err := repo.UserUsageForDay(context.Background(), uuid.New(), startOfDay(time.Now()))
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestIncrementUserUsageSeparateDays(t *testing.T) {
	db := setupUsageTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	today := startOfDay(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	require.NoError(t, repo.IncrementUserUsage(ctx, userID, yesterday))
	require.NoError(t, repo.IncrementUserUsage(ctx, userID, today))

	record, err := repo.UserUsageForDay(ctx, userID, today)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 1, record.RequestCount, "yesterday's row is inert for today's count")
}
