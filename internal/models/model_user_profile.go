package models

import "time"

// UserProfile is the denormalized profile row other features read.
// TotalPoints is the XP ledger total; LastCheckinAt mirrors the
// check-in record so unrelated screens can answer "can check in today"
// without loading the record.
type UserProfile struct {
	UserID        string     `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	TotalPoints   int        `gorm:"column:total_points;not null;default:0" json:"total_points"`
	LastCheckinAt *time.Time `gorm:"column:last_checkin_at;default:null" json:"last_checkin_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}
