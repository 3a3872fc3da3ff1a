package phase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/config"
	"github.com/gatherly/pulse/pkg/logctx"
	"github.com/gatherly/pulse/pkg/metrics"
	"github.com/gatherly/pulse/pkg/tool"
	"github.com/gatherly/pulse/pkg/types"
)

var (
	ErrPhaseNotFound = errors.New("phase not found")
	// ErrCompletionNotAllowed carries the gate's reason in its wrap.
	ErrCompletionNotAllowed = errors.New("phase completion not allowed")
)

// PointAwarder grants XP. Implemented by the points service.
type PointAwarder interface {
	Award(ctx context.Context, userID string, amount int) error
}

// PhaseStatus pairs a catalog phase with the user's state at now.
type PhaseStatus struct {
	Phase       *types.Phase       `json:"phase"`
	Verdict     types.PhaseVerdict `json:"verdict"`
	Completed   bool               `json:"completed"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// CompletionResult is returned by CompletePhase.
type CompletionResult struct {
	PhaseID          string             `json:"phase_id"`
	Verdict          types.PhaseVerdict `json:"verdict"`
	PointsAwarded    int                `json:"points_awarded"`
	AlreadyCompleted bool               `json:"already_completed"`
	CompletedAt      time.Time          `json:"completed_at"`
}

type Service struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	db     *gorm.DB
	points PointAwarder
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB, points PointAwarder) *Service {
	return &Service{cfg: cfg, log: log, db: db, points: points}
}

// ListPhases returns every configured phase with the user's verdict
// and completion state at now.
func (s *Service) ListPhases(ctx context.Context, userID string, now time.Time) ([]*PhaseStatus, error) {
	var rows []*models.PhaseCompletion
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load phase completions: %w", err)
	}
	byPhase := lo.KeyBy(rows, func(r *models.PhaseCompletion) string { return r.PhaseID })

	return lo.Map(s.cfg.Phases, func(p *types.Phase, _ int) *PhaseStatus {
		st := &PhaseStatus{Phase: p, Verdict: Evaluate(p, now)}
		if row, ok := byPhase[p.ID]; ok {
			st.Completed = true
			st.CompletedAt = &row.CompletedAt
		}
		return st
	}), nil
}

// CompletePhase marks the phase complete for the user and awards its
// points per the gate verdict. Idempotent: a repeated call returns the
// stored completion without a second award. A phase is never left
// marked complete when owed points could not be recorded.
func (s *Service) CompletePhase(ctx context.Context, userID, phaseID string, now time.Time) (*CompletionResult, error) {
	p := s.cfg.GetPhaseByID(phaseID)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPhaseNotFound, phaseID)
	}

	verdict := Evaluate(p, now)
	metrics.PhaseCompletionTotal.WithLabelValues(string(verdict.Reason)).Inc()
	if !verdict.CanComplete {
		return nil, fmt.Errorf("%w: %s", ErrCompletionNotAllowed, verdict.Reason)
	}

	if existing, err := s.getCompletion(ctx, userID, phaseID); err != nil {
		return nil, err
	} else if existing != nil {
		return s.alreadyCompleted(existing, verdict), nil
	}

	pointsDue := 0
	if verdict.ShouldAwardPoints {
		pointsDue = p.Points
	}
	row := &models.PhaseCompletion{
		ID:            tool.GenerateUUIDV7(),
		UserID:        userID,
		PhaseID:       phaseID,
		PointsAwarded: pointsDue,
		Reason:        verdict.Reason,
		CompletedAt:   now,
	}
	// Insert first: the unique (user_id, phase_id) index turns a retry
	// race into a duplicate key, keeping the award single-shot.
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, gerr := s.getCompletion(ctx, userID, phaseID)
			if gerr != nil {
				return nil, gerr
			}
			return s.alreadyCompleted(existing, verdict), nil
		}
		return nil, fmt.Errorf("failed to record phase completion: %w", err)
	}

	if pointsDue > 0 {
		if err := s.points.Award(ctx, userID, pointsDue); err != nil {
			// unmark rather than leave a completion with points owed
			if delErr := s.db.WithContext(ctx).Delete(&models.PhaseCompletion{}, "id = ?", row.ID).Error; delErr != nil {
				logctx.FromCtx(ctx, s.log).Errorw("failed to unmark completion after award failure",
					"user_id", userID, "phase_id", phaseID, "err", delErr)
			}
			return nil, err
		}
	}

	logctx.FromCtx(ctx, s.log).Infow("phase completed",
		"user_id", userID, "phase_id", phaseID, "points", pointsDue, "reason", verdict.Reason)

	return &CompletionResult{
		PhaseID:       phaseID,
		Verdict:       verdict,
		PointsAwarded: pointsDue,
		CompletedAt:   now,
	}, nil
}

func (s *Service) getCompletion(ctx context.Context, userID, phaseID string) (*models.PhaseCompletion, error) {
	var row models.PhaseCompletion
	err := s.db.WithContext(ctx).Where("user_id = ? AND phase_id = ?", userID, phaseID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load phase completion: %w", err)
	}
	return &row, nil
}

func (s *Service) alreadyCompleted(row *models.PhaseCompletion, verdict types.PhaseVerdict) *CompletionResult {
	return &CompletionResult{
		PhaseID:          row.PhaseID,
		Verdict:          verdict,
		PointsAwarded:    row.PointsAwarded,
		AlreadyCompleted: true,
		CompletedAt:      row.CompletedAt,
	}
}
