package milestone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/tool"
)

// Milestone names. One row per (user, name); the unique index makes
// firing idempotent, replacing the ad hoc one-time-UI boolean flags.
const (
	FirstCheckin        = "first_checkin"
	FirstCycleCompleted = "first_cycle_completed"
)

var ErrMilestoneNotFound = errors.New("milestone not found")

type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// FireOnce records the milestone for the user. Returns true only on
// the first call; a duplicate is absorbed and returns false.
func (s *Service) FireOnce(ctx context.Context, userID, name string) (bool, error) {
	row := &models.UserMilestone{
		ID:        tool.GenerateUUIDV7(),
		UserID:    userID,
		Milestone: name,
		FiredAt:   time.Now(),
	}
	err := s.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to record milestone: %w", err)
	}
	return true, nil
}

// List returns every milestone fired for the user.
func (s *Service) List(ctx context.Context, userID string) ([]*models.UserMilestone, error) {
	var rows []*models.UserMilestone
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("fired_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return rows, nil
}

// Ack marks the milestone's one-time UI as shown.
func (s *Service) Ack(ctx context.Context, userID, name string) error {
	res := s.db.WithContext(ctx).Model(&models.UserMilestone{}).
		Where("user_id = ? AND milestone = ?", userID, name).
		Update("acked_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to ack milestone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrMilestoneNotFound, name)
	}
	return nil
}
