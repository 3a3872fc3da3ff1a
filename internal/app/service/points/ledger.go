package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatherly/pulse/internal/models"
)

var (
	// ErrAtomicUnavailable signals that the ledger backend cannot serve
	// the atomic increment right now. Only this error triggers the
	// read-modify-write fallback; business rejections never do.
	ErrAtomicUnavailable = errors.New("atomic increment unavailable")

	// ErrPointAwardFailed means neither write path recorded the award.
	// Callers must not mark the related completion when they owed
	// points.
	ErrPointAwardFailed = errors.New("point award failed")
)

// Ledger is the XP total boundary.
type Ledger interface {
	IncrementTotal(ctx context.Context, userID string, amount int) error
	ReadTotal(ctx context.Context, userID string) (int, error)
	WriteTotal(ctx context.Context, userID string, total int) error
}

type gormLedger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

// IncrementTotal applies the delta server-side in one statement, so
// concurrent awards for the same user cannot lose updates.
func (l *gormLedger) IncrementTotal(ctx context.Context, userID string, amount int) error {
	profile := &models.UserProfile{UserID: userID, TotalPoints: amount}
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points": gorm.Expr("user_profile.total_points + ?", amount),
			"updated_at":   time.Now(),
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to increment total_points: %w", err)
	}
	return nil
}

func (l *gormLedger) ReadTotal(ctx context.Context, userID string) (int, error) {
	var profile models.UserProfile
	err := l.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read total_points: %w", err)
	}
	return profile.TotalPoints, nil
}

func (l *gormLedger) WriteTotal(ctx context.Context, userID string, total int) error {
	profile := &models.UserProfile{UserID: userID, TotalPoints: total}
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"total_points": total, "updated_at": time.Now()}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to write total_points: %w", err)
	}
	return nil
}
