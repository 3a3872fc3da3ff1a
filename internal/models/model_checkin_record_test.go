package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCheckinRecord_HasDate(t *testing.T) {
	rec := &CheckinRecord{CompletedDates: datatypes.JSONSlice[string]{"2026-03-02", "2026-03-03"}}

	require.True(t, rec.HasDate("2026-03-02"))
	require.False(t, rec.HasDate("2026-03-04"))

	var nilRec *CheckinRecord
	require.False(t, nilRec.HasDate("2026-03-02"))
}

func TestDateKey_UsesLocationCalendarDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:00 UTC is already the next calendar day in Tokyo
	at := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-03-02", DateKey(at, time.UTC))
	require.Equal(t, "2026-03-03", DateKey(at, tokyo))
}

func TestDateKeys_SortLexicographically(t *testing.T) {
	// the set relies on string comparison matching date order
	require.Less(t, DateKey(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), time.UTC),
		DateKey(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), time.UTC))
}
