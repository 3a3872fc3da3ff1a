package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/gatherly/pulse/internal/models"
)

func recordWith(start time.Time, dates ...string) *models.CheckinRecord {
	return &models.CheckinRecord{
		ID:             "rec-1",
		UserID:         "user-1",
		CycleStartAt:   start,
		CompletedDates: datatypes.JSONSlice[string](dates),
		CycleNumber:    1,
	}
}

func TestBuildCycleView_SlotStates(t *testing.T) {
	s := testSchedule()
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) // Monday
	rec := recordWith(start, "2026-03-02", "2026-03-03")

	// Thursday after unlock
	now := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	view := s.BuildCycleView(rec, now)

	require.Len(t, view.Slots, 7)
	require.Equal(t, 2, view.CompletedCount)
	require.True(t, view.CanCheckinToday)

	// Mon, Tue completed; Wed missed; Thu today and available
	require.True(t, view.Slots[0].Completed)
	require.True(t, view.Slots[1].Completed)
	require.True(t, view.Slots[2].Missed)
	require.False(t, view.Slots[2].Available)
	require.True(t, view.Slots[3].Today)
	require.True(t, view.Slots[3].Available)
	// future slots are neither missed nor available
	for _, sl := range view.Slots[4:] {
		require.False(t, sl.Missed)
		require.False(t, sl.Available)
		require.False(t, sl.Completed)
	}
}

func TestBuildCycleView_BeforeUnlockHour(t *testing.T) {
	s := testSchedule()
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	rec := recordWith(start)

	now := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	view := s.BuildCycleView(rec, now)

	require.False(t, view.CanCheckinToday)
	require.True(t, view.Slots[0].Today)
	require.False(t, view.Slots[0].Available)
	require.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), view.NextCheckinAt)
}

func TestBuildCycleView_CompletedSlotNotAvailable(t *testing.T) {
	s := testSchedule()
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	rec := recordWith(start, "2026-03-02")

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	view := s.BuildCycleView(rec, now)

	require.True(t, view.Slots[0].Completed)
	require.False(t, view.Slots[0].Available)
	require.False(t, view.CanCheckinToday)
}

func TestBuildCycleView_IgnoresOutOfWindowDates(t *testing.T) {
	s := testSchedule()
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	// leftovers from a previous cycle plus one in-window date
	rec := recordWith(start, "2026-02-20", "2026-02-25", "2026-03-04")

	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	view := s.BuildCycleView(rec, now)

	require.Equal(t, 1, view.CompletedCount)
}

func TestNeedsRollover(t *testing.T) {
	s := testSchedule()
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	rec := recordWith(start)

	require.False(t, s.NeedsRollover(rec, start.AddDate(0, 0, 6)))
	require.True(t, s.NeedsRollover(rec, start.AddDate(0, 0, 8)))
}

func TestRolloverTarget_StableUnderReapplication(t *testing.T) {
	s := testSchedule()
	rec := recordWith(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	rec.CycleNumber = 3

	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	start1, num1 := s.RolloverTarget(rec, now)
	start2, num2 := s.RolloverTarget(rec, now)

	require.Equal(t, start1, start2)
	require.Equal(t, num1, num2)
	require.Equal(t, 4, num1)
	// anchored at the unlock hour of now's day, not at old start + N cycles
	require.Equal(t, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), start1)
}

func TestNewRecord(t *testing.T) {
	s := testSchedule()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	rec := s.NewRecord("user-1", now)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "user-1", rec.UserID)
	require.Equal(t, 1, rec.CycleNumber)
	require.Empty(t, rec.CompletedDates)
	require.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), rec.CycleStartAt)
}
