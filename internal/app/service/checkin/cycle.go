package checkin

import (
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/tool"
)

// DaySlot is one of the cycle's day positions, derived per request and
// never persisted.
type DaySlot struct {
	DayIndex  int       `json:"day_index"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"is_completed"`
	// Available is only true for the today slot once the unlock hour
	// has passed and the slot is not yet completed.
	Available bool `json:"is_available"`
	Today     bool `json:"is_today"`
	// Missed marks past, non-today, non-completed slots.
	Missed bool `json:"is_missed"`
}

// CycleView is the authoritative read-only projection of a user's
// current cycle.
type CycleView struct {
	CycleNumber         int       `json:"cycle_number"`
	CycleStartAt        time.Time `json:"cycle_start_at"`
	Slots               []DaySlot `json:"slots"`
	CompletedCount      int       `json:"completed_count"`
	CanCheckinToday     bool      `json:"can_checkin_today"`
	FirstCycleCompleted bool      `json:"first_cycle_completed"`
	NextCheckinAt       time.Time `json:"next_checkin_at"`
}

// NewRecord synthesizes a fresh record for a user with no history,
// anchored at today's unlock hour. Persisting it is the store's job.
func (s UnlockSchedule) NewRecord(userID string, now time.Time) *models.CheckinRecord {
	return &models.CheckinRecord{
		ID:             tool.GenerateUUIDV7(),
		UserID:         userID,
		CycleStartAt:   s.CycleStartFor(now),
		CompletedDates: datatypes.JSONSlice[string]{},
		CycleNumber:    1,
	}
}

// NeedsRollover reports whether the record's cycle window has elapsed
// and must be rolled over before the record is treated as
// authoritative.
func (s UnlockSchedule) NeedsRollover(rec *models.CheckinRecord, now time.Time) bool {
	return s.CycleElapsed(rec.CycleStartAt, now)
}

// RolloverTarget computes the new cycle anchor and counter. Stable
// under re-application: the target depends only on now.
func (s UnlockSchedule) RolloverTarget(rec *models.CheckinRecord, now time.Time) (time.Time, int) {
	return s.CycleStartFor(now), rec.CycleNumber + 1
}

// BuildCycleView derives the per-day slots and booleans from a record
// whose rollover, if any, has already been applied. It recomputes
// "today" from now on every call, so a session crossing midnight gets
// a fresh view. Dates outside [cycleStart, cycleStart+days) are
// ignored: leftovers from an unrolled-over prior cycle never inflate
// the count.
func (s UnlockSchedule) BuildCycleView(rec *models.CheckinRecord, now time.Time) *CycleView {
	todayKey := s.dateKey(now)
	unlocked := s.UnlockedToday(now)
	start := rec.CycleStartAt.In(s.loc())

	slots := make([]DaySlot, 0, s.days())
	for i := 0; i < s.days(); i++ {
		date := start.AddDate(0, 0, i)
		key := s.dateKey(date)
		slot := DaySlot{
			DayIndex:  i + 1,
			Date:      date,
			Completed: rec.HasDate(key),
			Today:     key == todayKey,
		}
		slot.Available = slot.Today && unlocked && !slot.Completed
		slot.Missed = key < todayKey && !slot.Completed
		slots = append(slots, slot)
	}

	return &CycleView{
		CycleNumber:         rec.CycleNumber,
		CycleStartAt:        rec.CycleStartAt,
		Slots:               slots,
		CompletedCount:      lo.CountBy(slots, func(sl DaySlot) bool { return sl.Completed }),
		CanCheckinToday:     lo.SomeBy(slots, func(sl DaySlot) bool { return sl.Available }),
		FirstCycleCompleted: rec.FirstCycleCompleted,
		NextCheckinAt:       s.NextUnlock(now),
	}
}
