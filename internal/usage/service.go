package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/creatorlift/creatorlift-backend/pkg/config"
	"github.com/creatorlift/creatorlift-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Default budgets. The quota ceiling sits deliberately under the Data API's
// published 10,000-unit daily limit to leave headroom for drift.
const (
	DefaultDailyQuotaLimit = 9000
	DefaultUserDailyLimit  = 10
)

// Tracker is the injected capability every research request consults before
// spending external API budget.
type Tracker interface {
	// RecordUsage appends an immutable ledger row for spent quota units.
	RecordUsage(ctx context.Context, units int) error
	// UsageToday sums the units spent so far today across all users.
	UsageToday(ctx context.Context) (int, error)
	// CanAfford reports whether spending unitsNeeded would stay within the
	// daily ceiling. The boundary is inclusive: landing exactly on the limit
	// is allowed.
	CanAfford(ctx context.Context, unitsNeeded int) (bool, error)
	// DailyUsage returns how many research requests the user made today.
	DailyUsage(ctx context.Context, userID uuid.UUID) (int, error)
	// CanRequest reports whether the user is under their daily allowance.
	// Unlike CanAfford this boundary is strict: at the limit means blocked.
	CanRequest(ctx context.Context, userID uuid.UUID) (bool, error)
	// Remaining returns the user's remaining allowance, never negative.
	Remaining(ctx context.Context, userID uuid.UUID) (int, error)
	// RecordRequest counts one request against the user's daily allowance.
	RecordRequest(ctx context.Context, userID uuid.UUID) error
	// UserDailyLimit exposes the configured per-user allowance.
	UserDailyLimit() int
}

type service struct {
	repo            Repository
	dailyQuotaLimit int
	userDailyLimit  int
	now             func() time.Time
}

// NewService wires a usage tracker with the provided repository and budgets.
func NewService(repo Repository, cfg config.ResearchConfig) (Tracker, error) {
	if repo == nil {
		return nil, fmt.Errorf("usage repository required")
	}
	quotaLimit := cfg.DailyQuotaLimit
	if quotaLimit <= 0 {
		quotaLimit = DefaultDailyQuotaLimit
	}
	userLimit := cfg.UserDailyLimit
	if userLimit <= 0 {
		userLimit = DefaultUserDailyLimit
	}
	return &service{
		repo:            repo,
		dailyQuotaLimit: quotaLimit,
		userDailyLimit:  userLimit,
		now:             time.Now,
	}, nil
}

func (s *service) UserDailyLimit() int {
	return s.userDailyLimit
}

func (s *service) RecordUsage(ctx context.Context, units int) error {
	if units < 0 {
		return fmt.Errorf("units must be non-negative, got %d", units)
	}
	record := &models.APIUsageRecord{
		ID:           uuid.New(),
		UsageDate:    startOfDay(s.now()),
		UnitsUsed:    units,
		RequestCount: 1,
	}
	return s.repo.CreateAPIUsage(ctx, record)
}

func (s *service) UsageToday(ctx context.Context) (int, error) {
	return s.repo.SumUnitsForDay(ctx, startOfDay(s.now()))
}

func (s *service) CanAfford(ctx context.Context, unitsNeeded int) (bool, error) {
	used, err := s.UsageToday(ctx)
	if err != nil {
		return false, err
	}
	return used+unitsNeeded <= s.dailyQuotaLimit, nil
}

func (s *service) DailyUsage(ctx context.Context, userID uuid.UUID) (int, error) {
	record, err := s.repo.UserUsageForDay(ctx, userID, startOfDay(s.now()))
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, nil
	}
	return record.RequestCount, nil
}

func (s *service) CanRequest(ctx context.Context, userID uuid.UUID) (bool, error) {
	used, err := s.DailyUsage(ctx, userID)
	if err != nil {
		return false, err
	}
	return used < s.userDailyLimit, nil
}

func (s *service) Remaining(ctx context.Context, userID uuid.UUID) (int, error) {
	used, err := s.DailyUsage(ctx, userID)
	if err != nil {
		return 0, err
	}
	remaining := s.userDailyLimit - used
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

func (s *service) RecordRequest(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id is required")
	}
	return s.repo.IncrementUserUsage(ctx, userID, startOfDay(s.now()))
}

// startOfDay truncates to the local midnight boundary; both ledgers reset
// there.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
