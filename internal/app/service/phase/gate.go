package phase

import (
	"time"

	"github.com/gatherly/pulse/pkg/types"
)

// Evaluate is the single late-completion policy. Every completion call
// site routes through it; nothing else in the repo compares phase
// dates.
//
// Decision table:
//
//	inactive                    -> cannot complete
//	now < start                 -> cannot complete (not started)
//	no deadline, or now <= end  -> complete with points
//	past deadline, late allowed -> complete without points
//	past deadline otherwise     -> cannot complete
func Evaluate(p *types.Phase, now time.Time) types.PhaseVerdict {
	if p == nil || !p.Active {
		return types.PhaseVerdict{Reason: types.PhaseReasonInactive}
	}
	if !p.StartAt.IsZero() && now.Before(p.StartAt) {
		return types.PhaseVerdict{Reason: types.PhaseReasonNotStarted}
	}
	if p.EndAt == nil || !now.After(*p.EndAt) {
		return types.PhaseVerdict{CanComplete: true, ShouldAwardPoints: true, Reason: types.PhaseReasonInWindow}
	}
	if p.AllowLateCompletion {
		return types.PhaseVerdict{CanComplete: true, Reason: types.PhaseReasonLateAllowedNoPoint}
	}
	return types.PhaseVerdict{Reason: types.PhaseReasonLateDisallowed}
}
