package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateKeyLayout is the calendar-date encoding used inside
// CheckinRecord.CompletedDates. Dates are compared as strings, so the
// layout must sort lexicographically.
const DateKeyLayout = time.DateOnly

// CheckinRecord is the single aggregated check-in record per user.
// It is mutated only by that user's own check-in transaction.
type CheckinRecord struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	// CycleStartAt marks when the current cycle window began, always
	// normalized to the daily unlock hour.
	CycleStartAt time.Time `gorm:"column:cycle_start_at;not null" json:"cycle_start_at"`
	// CompletedDates holds the calendar dates (DateKeyLayout) on which a
	// check-in was recorded. Treated as a set; duplicates never inserted.
	CompletedDates datatypes.JSONSlice[string] `gorm:"column:completed_dates;type:jsonb;default:'[]'" json:"completed_dates"`
	// CycleNumber increments on every rollover, starting at 1.
	CycleNumber int `gorm:"column:cycle_number;not null;default:1" json:"cycle_number"`
	// FirstCycleCompleted is set the first time a full cycle is checked
	// in. Monotonic: never reset by rollovers.
	FirstCycleCompleted bool       `gorm:"column:first_cycle_completed;not null;default:false" json:"first_cycle_completed"`
	LastCheckinAt       *time.Time `gorm:"column:last_checkin_at;default:null" json:"last_checkin_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (CheckinRecord) TableName() string {
	return "checkin_record"
}

// HasDate reports whether the given date key is already recorded.
func (r *CheckinRecord) HasDate(key string) bool {
	if r == nil {
		return false
	}
	for _, d := range r.CompletedDates {
		if d == key {
			return true
		}
	}
	return false
}

// DateKey encodes a timestamp as a calendar-date set member in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}
