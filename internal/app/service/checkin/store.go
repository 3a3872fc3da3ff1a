package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/tool"
)

// RecordStore is the boundary to whatever persists check-in records.
// The engine only needs get/insert/partial-update plus one conditional
// write for rollovers.
type RecordStore interface {
	Get(ctx context.Context, userID string) (*models.CheckinRecord, error)
	Insert(ctx context.Context, rec *models.CheckinRecord) error
	Update(ctx context.Context, userID string, fields map[string]any) error
	// ApplyRollover transitions the record to a new cycle in a single
	// conditional update keyed on the old start. Returns false when
	// zero rows matched, meaning a concurrent writer already rolled
	// over; callers then re-fetch.
	ApplyRollover(ctx context.Context, userID string, oldStart, newStart time.Time, newNumber int) (bool, error)
}

// ProfileMirror denormalizes the last check-in timestamp onto the user
// profile. Writes are best-effort by contract.
type ProfileMirror interface {
	UpdateLastCheckin(ctx context.Context, userID string, at time.Time) error
}

type gormRecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) RecordStore {
	return &gormRecordStore{db: db}
}

func (s *gormRecordStore) Get(ctx context.Context, userID string) (*models.CheckinRecord, error) {
	var rec models.CheckinRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrRecordNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkin record: %w", err)
	}
	return &rec, nil
}

func (s *gormRecordStore) Insert(ctx context.Context, rec *models.CheckinRecord) error {
	if rec.ID == "" {
		rec.ID = tool.GenerateUUIDV7()
	}
	err := s.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: user %s", ErrDuplicateCreate, rec.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to create checkin record: %w", err)
	}
	return nil
}

func (s *gormRecordStore) Update(ctx context.Context, userID string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.CheckinRecord{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update checkin record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", ErrRecordNotFound, userID)
	}
	return nil
}

func (s *gormRecordStore) ApplyRollover(ctx context.Context, userID string, oldStart, newStart time.Time, newNumber int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.CheckinRecord{}).
		Where("user_id = ? AND cycle_start_at = ?", userID, oldStart).
		Updates(map[string]any{
			"cycle_start_at":  newStart,
			"cycle_number":    newNumber,
			"completed_dates": datatypes.JSONSlice[string]{},
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to roll over cycle: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

type gormProfileMirror struct {
	db *gorm.DB
}

func NewProfileMirror(db *gorm.DB) ProfileMirror {
	return &gormProfileMirror{db: db}
}

func (m *gormProfileMirror) UpdateLastCheckin(ctx context.Context, userID string, at time.Time) error {
	profile := &models.UserProfile{UserID: userID, LastCheckinAt: &at}
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_checkin_at": at, "updated_at": time.Now()}),
	}).Create(profile).Error
}
