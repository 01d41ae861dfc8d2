package ideas

import (
	"context"
	"errors"

	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the read-only surface the research engine has onto ideas.
// Idea lifecycle (creation, voting) belongs to another service.
type Repository interface {
	Get(ctx context.Context, ideaID uuid.UUID) (*models.Idea, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an idea repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns the idea or nil when no row exists.
func (r *repository) Get(ctx context.Context, ideaID uuid.UUID) (*models.Idea, error) {
	var idea models.Idea
	err := r.db.WithContext(ctx).Where("id = ?", ideaID).First(&idea).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &idea, nil
}
