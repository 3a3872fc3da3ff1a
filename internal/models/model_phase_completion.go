package models

import (
	"time"

	"github.com/gatherly/pulse/pkg/types"
	"gorm.io/datatypes"
)

// PhaseCompletion records that a user completed a phase. The unique
// (user_id, phase_id) index makes completion idempotent under retries.
type PhaseCompletion struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID  string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:unique_user_id_phase_id,priority:1" json:"user_id"`
	PhaseID string `gorm:"column:phase_id;type:varchar(64);not null;uniqueIndex:unique_user_id_phase_id,priority:2" json:"phase_id"`
	// PointsAwarded is the XP granted for this completion; zero for late
	// completions.
	PointsAwarded int `gorm:"column:points_awarded;not null;default:0" json:"points_awarded"`
	// Reason snapshots the gate verdict that permitted the completion.
	Reason      types.PhaseReason `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	CompletedAt time.Time         `gorm:"column:completed_at;not null" json:"completed_at"`
	// Extra stores additional JSON data.
	Extra     datatypes.JSON `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (PhaseCompletion) TableName() string {
	return "phase_completion"
}
