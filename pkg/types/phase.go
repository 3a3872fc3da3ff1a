package types

import "time"

// PhaseReason explains a completion verdict.
type PhaseReason string

const (
	PhaseReasonInactive           PhaseReason = "inactive"
	PhaseReasonNotStarted         PhaseReason = "not_started"
	PhaseReasonInWindow           PhaseReason = "in_window"
	PhaseReasonLateAllowedNoPoint PhaseReason = "late_allowed_no_points"
	PhaseReasonLateDisallowed     PhaseReason = "late_disallowed"
)

// Phase is a configured event phase. The catalog lives in config, not
// in the database; completions reference phases by ID.
type Phase struct {
	ID     string `json:"id" mapstructure:"id"`
	Name   string `json:"name" mapstructure:"name"`
	Points int    `json:"points" mapstructure:"points"`
	// StartAt marks when the phase opens. Zero means open since forever.
	StartAt time.Time `json:"start_at" mapstructure:"start_at"`
	// EndAt is the completion deadline. Nil means no deadline.
	EndAt *time.Time `json:"end_at" mapstructure:"end_at"`
	// AllowLateCompletion permits completing after EndAt, without points.
	AllowLateCompletion bool `json:"allow_late_completion" mapstructure:"allow_late_completion"`
	Active              bool `json:"active" mapstructure:"active"`
}

// PhaseVerdict is the gate's answer for one phase at one instant.
type PhaseVerdict struct {
	CanComplete       bool        `json:"can_complete"`
	ShouldAwardPoints bool        `json:"should_award_points"`
	Reason            PhaseReason `json:"reason"`
}
