package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/pulse/pkg/types"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-48 * time.Hour)
	after := now.Add(48 * time.Hour)
	pastEnd := now.Add(-time.Hour)

	cases := []struct {
		name  string
		phase *types.Phase
		want  types.PhaseVerdict
	}{
		{
			name:  "nil phase",
			phase: nil,
			want:  types.PhaseVerdict{Reason: types.PhaseReasonInactive},
		},
		{
			name:  "inactive",
			phase: &types.Phase{ID: "p", Active: false},
			want:  types.PhaseVerdict{Reason: types.PhaseReasonInactive},
		},
		{
			name:  "not started yet",
			phase: &types.Phase{ID: "p", Active: true, StartAt: after},
			want:  types.PhaseVerdict{Reason: types.PhaseReasonNotStarted},
		},
		{
			name:  "open ended",
			phase: &types.Phase{ID: "p", Active: true, StartAt: before},
			want:  types.PhaseVerdict{CanComplete: true, ShouldAwardPoints: true, Reason: types.PhaseReasonInWindow},
		},
		{
			name:  "inside window",
			phase: &types.Phase{ID: "p", Active: true, StartAt: before, EndAt: &after},
			want:  types.PhaseVerdict{CanComplete: true, ShouldAwardPoints: true, Reason: types.PhaseReasonInWindow},
		},
		{
			name:  "exactly at deadline",
			phase: &types.Phase{ID: "p", Active: true, StartAt: before, EndAt: &now},
			want:  types.PhaseVerdict{CanComplete: true, ShouldAwardPoints: true, Reason: types.PhaseReasonInWindow},
		},
		{
			name:  "late with grace",
			phase: &types.Phase{ID: "p", Active: true, StartAt: before, EndAt: &pastEnd, AllowLateCompletion: true},
			want:  types.PhaseVerdict{CanComplete: true, Reason: types.PhaseReasonLateAllowedNoPoint},
		},
		{
			name:  "late without grace",
			phase: &types.Phase{ID: "p", Active: true, StartAt: before, EndAt: &pastEnd},
			want:  types.PhaseVerdict{Reason: types.PhaseReasonLateDisallowed},
		},
		{
			name:  "zero start means open since forever",
			phase: &types.Phase{ID: "p", Active: true},
			want:  types.PhaseVerdict{CanComplete: true, ShouldAwardPoints: true, Reason: types.PhaseReasonInWindow},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Evaluate(tc.phase, now))
		})
	}
}

func TestEvaluate_InactiveWinsOverWindow(t *testing.T) {
	// deactivation overrides an otherwise open window
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &types.Phase{ID: "p", Active: false, StartAt: now.Add(-time.Hour)}
	require.Equal(t, types.PhaseVerdict{Reason: types.PhaseReasonInactive}, Evaluate(p, now))
}
