package models

import "time"

// UserMilestone is the idempotent "has this milestone fired for this
// user" ledger. One-time UI (tooltips, celebration modals) keys off
// rows here instead of scattered boolean flags.
type UserMilestone struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:unique_user_id_milestone,priority:1" json:"user_id"`
	Milestone string    `gorm:"column:milestone;type:varchar(64);not null;uniqueIndex:unique_user_id_milestone,priority:2" json:"milestone"`
	FiredAt   time.Time `gorm:"column:fired_at;not null" json:"fired_at"`
	// AckedAt is set once the client confirms it showed the one-time UI.
	AckedAt   *time.Time `gorm:"column:acked_at;default:null" json:"acked_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserMilestone) TableName() string {
	return "user_milestone"
}
