package checkin

import (
	"time"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/config"
)

// UnlockSchedule holds the fixed daily unlock hour and cycle length.
// Every time comparison in the engine goes through these predicates;
// all of them are pure given now, so nothing below reads the wall
// clock.
type UnlockSchedule struct {
	UnlockHour int
	CycleDays  int
	Location   *time.Location
}

func NewUnlockSchedule(cfg *config.Config) UnlockSchedule {
	return UnlockSchedule{
		UnlockHour: cfg.Checkin.UnlockHour,
		CycleDays:  cfg.Checkin.CycleDays,
		Location:   cfg.Location(),
	}
}

func (s UnlockSchedule) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s UnlockSchedule) days() int {
	if s.CycleDays <= 0 {
		return 7
	}
	return s.CycleDays
}

// UnlockedToday reports whether now's local hour is at or past the
// unlock hour.
func (s UnlockSchedule) UnlockedToday(now time.Time) bool {
	return now.In(s.loc()).Hour() >= s.UnlockHour
}

// NextUnlock returns the next occurrence of the unlock hour: today at
// that hour if now is earlier in the day, otherwise tomorrow.
func (s UnlockSchedule) NextUnlock(now time.Time) time.Time {
	n := now.In(s.loc())
	unlock := time.Date(n.Year(), n.Month(), n.Day(), s.UnlockHour, 0, 0, 0, s.loc())
	if !n.Before(unlock) {
		unlock = unlock.AddDate(0, 0, 1)
	}
	return unlock
}

// CycleElapsed reports whether the cycle window starting at cycleStart
// is over at now.
func (s UnlockSchedule) CycleElapsed(cycleStart, now time.Time) bool {
	return !now.Before(cycleStart.AddDate(0, 0, s.days()))
}

// CycleStartFor returns today anchored at the unlock hour. Used both
// for fresh records and as the rollover target; depends only on the
// calendar day of now, so re-applying a rollover computes the same
// start.
func (s UnlockSchedule) CycleStartFor(now time.Time) time.Time {
	n := now.In(s.loc())
	return time.Date(n.Year(), n.Month(), n.Day(), s.UnlockHour, 0, 0, 0, s.loc())
}

func (s UnlockSchedule) dateKey(t time.Time) string {
	return models.DateKey(t, s.loc())
}
