package ideas

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
)

func setupIdeasTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS ideas (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  niche TEXT,
  votes INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestGetReturnsIdea(t *testing.T) {
	db := setupIdeasTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	niche := "gardening"
	idea := &models.Idea{ID: uuid.New(), Title: "How to grow tomatoes indoors", Niche: &niche, Votes: 7}
	require.NoError(t, db.Create(idea).Error)

	got, err := repo.Get(ctx, idea.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, idea.Title, got.Title)
	assert.Equal(t, 7, got.Votes)
	require.NotNil(t, got.Niche)
	assert.Equal(t, "gardening", *got.Niche)
}

func TestGetMissingIdeaReturnsNil(t *testing.T) {
	db := setupIdeasTestDB(t)
	repo := NewRepository(db)

	got, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
