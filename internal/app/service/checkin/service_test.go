package checkin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/config"
	"github.com/gatherly/pulse/pkg/types"
)

type fakeStore struct {
	rec *models.CheckinRecord
	// getQueue, when set, overrides rec for successive Get calls; a nil
	// element means not-found.
	getQueue       []*models.CheckinRecord
	insertDup      bool
	rolloverDenied bool
	rollovers      int
	updates        []map[string]any
}

func (f *fakeStore) Get(_ context.Context, userID string) (*models.CheckinRecord, error) {
	if len(f.getQueue) > 0 {
		next := f.getQueue[0]
		f.getQueue = f.getQueue[1:]
		if next == nil {
			return nil, fmt.Errorf("%w: user %s", ErrRecordNotFound, userID)
		}
		return next, nil
	}
	if f.rec == nil {
		return nil, fmt.Errorf("%w: user %s", ErrRecordNotFound, userID)
	}
	return f.rec, nil
}

func (f *fakeStore) Insert(_ context.Context, rec *models.CheckinRecord) error {
	if f.insertDup {
		return fmt.Errorf("%w: user %s", ErrDuplicateCreate, rec.UserID)
	}
	f.rec = rec
	return nil
}

func (f *fakeStore) Update(_ context.Context, _ string, fields map[string]any) error {
	f.updates = append(f.updates, fields)
	if f.rec == nil {
		return ErrRecordNotFound
	}
	if v, ok := fields["completed_dates"]; ok {
		f.rec.CompletedDates = v.(datatypes.JSONSlice[string])
	}
	if v, ok := fields["last_checkin_at"]; ok {
		at := v.(time.Time)
		f.rec.LastCheckinAt = &at
	}
	if v, ok := fields["first_cycle_completed"]; ok {
		f.rec.FirstCycleCompleted = v.(bool)
	}
	return nil
}

func (f *fakeStore) ApplyRollover(_ context.Context, _ string, _, newStart time.Time, newNumber int) (bool, error) {
	f.rollovers++
	if f.rolloverDenied {
		return false, nil
	}
	f.rec.CycleStartAt = newStart
	f.rec.CycleNumber = newNumber
	f.rec.CompletedDates = datatypes.JSONSlice[string]{}
	return true, nil
}

type fakeProfiles struct {
	err   error
	calls int
}

func (f *fakeProfiles) UpdateLastCheckin(_ context.Context, _ string, _ time.Time) error {
	f.calls++
	return f.err
}

type fakePoints struct {
	err     error
	amounts []int
}

func (f *fakePoints) Award(_ context.Context, _ string, amount int) error {
	if f.err != nil {
		return f.err
	}
	f.amounts = append(f.amounts, amount)
	return nil
}

type fakeMilestones struct {
	fired []string
}

func (f *fakeMilestones) FireOnce(_ context.Context, _, name string) (bool, error) {
	f.fired = append(f.fired, name)
	return true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Checkin: config.CheckinConfig{
			UnlockHour:            8,
			CycleDays:             7,
			Timezone:              "UTC",
			DailyPoints:           10,
			FirstCycleBonusPoints: 50,
			PhaseID:               "phase-1",
		},
		Phases: []*types.Phase{{ID: "phase-1", Active: true}},
	}
}

type testEnv struct {
	svc        *Service
	store      *fakeStore
	profiles   *fakeProfiles
	points     *fakePoints
	milestones *fakeMilestones
}

func newTestEnv(cfg *config.Config) *testEnv {
	store := &fakeStore{}
	profiles := &fakeProfiles{}
	pts := &fakePoints{}
	ms := &fakeMilestones{}
	svc := NewService(cfg, zap.NewNop().Sugar(), NewUnlockSchedule(cfg), store, profiles, pts, ms, nil)
	return &testEnv{svc: svc, store: store, profiles: profiles, points: pts, milestones: ms}
}

func TestPerformCheckin_FirstVisit(t *testing.T) {
	env := newTestEnv(testConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // Monday after unlock

	res, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.False(t, res.AlreadyCheckedIn)
	require.Equal(t, 10, res.PointsAwarded)
	require.Equal(t, 1, res.Cycle.CompletedCount)
	require.False(t, res.Cycle.CanCheckinToday)

	require.True(t, env.store.rec.HasDate("2026-03-02"))
	require.Equal(t, 1, env.profiles.calls)
	require.Contains(t, env.milestones.fired, "first_checkin")
}

func TestPerformCheckin_SameDayRepeatIsNoOp(t *testing.T) {
	env := newTestEnv(testConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.NoError(t, err)

	// retry later the same day
	res, err := env.svc.PerformCheckin(context.Background(), "user-1", now.Add(3*time.Hour))
	require.NoError(t, err)
	require.True(t, res.AlreadyCheckedIn)
	require.Zero(t, res.PointsAwarded)

	// only one award and one set member
	require.Equal(t, []int{10}, env.points.amounts)
	require.Len(t, env.store.rec.CompletedDates, 1)
}

func TestPerformCheckin_BeforeUnlockHour(t *testing.T) {
	env := newTestEnv(testConfig())
	now := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

	_, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.ErrorIs(t, err, ErrCheckinNotAvailable)
	require.Empty(t, env.points.amounts)
	require.Empty(t, env.store.rec.CompletedDates)
}

func TestPerformCheckin_SeventhDayCompletesFirstCycle(t *testing.T) {
	env := newTestEnv(testConfig())
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	last := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	env.store.rec = &models.CheckinRecord{
		ID: "rec-1", UserID: "user-1", CycleStartAt: start, CycleNumber: 1,
		CompletedDates: datatypes.JSONSlice[string]{
			"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07",
		},
		LastCheckinAt: &last,
	}

	now := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC) // Sunday, day 7
	res, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.True(t, res.FirstCycleJustCompleted)
	require.Equal(t, 60, res.PointsAwarded) // daily 10 + bonus 50
	require.Equal(t, 7, res.Cycle.CompletedCount)
	require.True(t, env.store.rec.FirstCycleCompleted)
	require.Contains(t, env.milestones.fired, "first_cycle_completed")
	require.NotContains(t, env.milestones.fired, "first_checkin")
}

func TestPerformCheckin_FirstCycleFlagNotReFired(t *testing.T) {
	env := newTestEnv(testConfig())
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	last := start.Add(-23 * time.Hour)
	env.store.rec = &models.CheckinRecord{
		ID: "rec-1", UserID: "user-1", CycleStartAt: start, CycleNumber: 2,
		CompletedDates:      datatypes.JSONSlice[string]{},
		FirstCycleCompleted: true,
		LastCheckinAt:       &last,
	}

	now := start.Add(time.Hour)
	res, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.False(t, res.FirstCycleJustCompleted)
	require.Equal(t, 10, res.PointsAwarded)
	require.True(t, res.Cycle.FirstCycleCompleted)
	require.Empty(t, env.milestones.fired)
}

func TestLoadCycle_AppliesRollover(t *testing.T) {
	env := newTestEnv(testConfig())
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	env.store.rec = &models.CheckinRecord{
		ID: "rec-1", UserID: "user-1", CycleStartAt: start, CycleNumber: 1,
		CompletedDates: datatypes.JSONSlice[string]{"2026-03-02", "2026-03-03"},
	}

	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	view, err := env.svc.LoadCycle(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 2, view.CycleNumber)
	require.Equal(t, time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC), view.CycleStartAt)
	require.Zero(t, view.CompletedCount)
	require.Equal(t, 1, env.store.rollovers)
}

func TestLoadCycle_RolloverRaceLostRefetches(t *testing.T) {
	env := newTestEnv(testConfig())
	stale := &models.CheckinRecord{
		ID: "rec-1", UserID: "user-1",
		CycleStartAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), CycleNumber: 1,
	}
	fresh := &models.CheckinRecord{
		ID: "rec-1", UserID: "user-1",
		CycleStartAt:   time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC),
		CycleNumber:    2,
		CompletedDates: datatypes.JSONSlice[string]{},
	}
	env.store.rec = fresh
	env.store.getQueue = []*models.CheckinRecord{stale}
	env.store.rolloverDenied = true

	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	view, err := env.svc.LoadCycle(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 2, view.CycleNumber)
}

func TestLoadCycle_ConcurrentFirstVisitAbsorbed(t *testing.T) {
	env := newTestEnv(testConfig())
	winner := &models.CheckinRecord{
		ID: "rec-other", UserID: "user-1",
		CycleStartAt:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		CycleNumber:    1,
		CompletedDates: datatypes.JSONSlice[string]{},
	}
	env.store.insertDup = true
	env.store.getQueue = []*models.CheckinRecord{nil, winner}

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	view, err := env.svc.LoadCycle(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 1, view.CycleNumber)
}

func TestPerformCheckin_ProfileMirrorFailureIsAbsorbed(t *testing.T) {
	env := newTestEnv(testConfig())
	env.profiles.err = errors.New("profile table down")

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	res, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 10, res.PointsAwarded)
}

func TestPerformCheckin_GateClosedRecordsWithoutPoints(t *testing.T) {
	cfg := testConfig()
	cfg.Phases[0].Active = false
	env := newTestEnv(cfg)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	res, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.NoError(t, err)
	require.Zero(t, res.PointsAwarded)
	require.True(t, env.store.rec.HasDate("2026-03-02"))
	require.Empty(t, env.points.amounts)
}

func TestPerformCheckin_AwardFailureFailsCall(t *testing.T) {
	env := newTestEnv(testConfig())
	env.points.err = errors.New("ledger down")

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := env.svc.PerformCheckin(context.Background(), "user-1", now)
	require.Error(t, err)
}
