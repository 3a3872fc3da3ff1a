package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatherly/pulse/internal/app/service/milestone"
	"github.com/gatherly/pulse/internal/app/service/phase"
	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/config"
	"github.com/gatherly/pulse/pkg/logctx"
	"github.com/gatherly/pulse/pkg/metrics"
	"github.com/gatherly/pulse/pkg/types"
)

// PointAwarder grants XP. Implemented by the points service.
type PointAwarder interface {
	Award(ctx context.Context, userID string, amount int) error
}

// MilestoneRecorder marks one-shot milestones. Implemented by the
// milestone service.
type MilestoneRecorder interface {
	FireOnce(ctx context.Context, userID, name string) (bool, error)
}

// CheckinResult is what the write path returns to the caller.
type CheckinResult struct {
	Cycle *CycleView `json:"cycle"`
	// AlreadyCheckedIn is set when today's date was present before the
	// call; the operation was a no-op.
	AlreadyCheckedIn bool `json:"already_checked_in"`
	// FirstCycleJustCompleted lets the caller trigger the one-time
	// completion UI.
	FirstCycleJustCompleted bool `json:"first_cycle_just_completed"`
	PointsAwarded           int  `json:"points_awarded"`
}

type Service struct {
	cfg        *config.Config
	log        *zap.SugaredLogger
	schedule   UnlockSchedule
	store      RecordStore
	profiles   ProfileMirror
	points     PointAwarder
	milestones MilestoneRecorder
	db         *gorm.DB
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, schedule UnlockSchedule, store RecordStore, profiles ProfileMirror, points PointAwarder, milestones MilestoneRecorder, db *gorm.DB) *Service {
	return &Service{cfg: cfg, log: log, schedule: schedule, store: store, profiles: profiles, points: points, milestones: milestones, db: db}
}

// LoadCycle returns the current cycle view for the user, creating the
// record lazily and persisting a rollover first when the window has
// elapsed.
func (s *Service) LoadCycle(ctx context.Context, userID string, now time.Time) (*CycleView, error) {
	rec, err := s.loadRecord(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return s.schedule.BuildCycleView(rec, now), nil
}

// loadRecord fetches the user's record, creating it on first visit and
// applying any due rollover before returning. The record it returns is
// always safe to derive a view from.
func (s *Service) loadRecord(ctx context.Context, userID string, now time.Time) (*models.CheckinRecord, error) {
	rec, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrRecordNotFound) {
		rec = s.schedule.NewRecord(userID, now)
		if insErr := s.store.Insert(ctx, rec); insErr != nil {
			if errors.Is(insErr, ErrDuplicateCreate) {
				// concurrent first visit; the other writer's row wins
				return s.store.Get(ctx, userID)
			}
			return nil, insErr
		}
		return rec, nil
	}
	if err != nil {
		return nil, err
	}

	if !s.schedule.NeedsRollover(rec, now) {
		return rec, nil
	}

	newStart, newNumber := s.schedule.RolloverTarget(rec, now)
	applied, err := s.store.ApplyRollover(ctx, userID, rec.CycleStartAt, newStart, newNumber)
	if err != nil {
		return nil, err
	}
	if !applied {
		// lost the rollover race; the winner computed the same target
		return s.store.Get(ctx, userID)
	}
	metrics.CycleRolloverTotal.Inc()
	logctx.FromCtx(ctx, s.log).Infow("cycle rolled over",
		"user_id", userID, "cycle_number", newNumber, "cycle_start_at", newStart)
	rec.CycleStartAt = newStart
	rec.CycleNumber = newNumber
	rec.CompletedDates = datatypes.JSONSlice[string]{}
	return rec, nil
}

// PerformCheckin records today's check-in for the user. Repeating the
// call on the same day is a no-op returning current state, so a
// retried request can never double-append or double-award.
func (s *Service) PerformCheckin(ctx context.Context, userID string, now time.Time) (*CheckinResult, error) {
	rec, err := s.loadRecord(ctx, userID, now)
	if err != nil {
		metrics.CheckinTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	view := s.schedule.BuildCycleView(rec, now)
	todayKey := s.schedule.dateKey(now)

	if rec.HasDate(todayKey) {
		metrics.CheckinTotal.WithLabelValues("duplicate").Inc()
		return &CheckinResult{Cycle: view, AlreadyCheckedIn: true}, nil
	}
	if !view.CanCheckinToday {
		metrics.CheckinTotal.WithLabelValues("not_available").Inc()
		return nil, fmt.Errorf("%w: next unlock at %s", ErrCheckinNotAvailable, view.NextCheckinAt.Format(time.RFC3339))
	}

	firstEver := rec.LastCheckinAt == nil
	// today is inside the window by construction, so the appended date
	// always counts toward the cycle
	firstCycleDone := view.CompletedCount+1 >= s.schedule.days() && !rec.FirstCycleCompleted

	dates := append(datatypes.JSONSlice[string]{}, rec.CompletedDates...)
	dates = append(dates, todayKey)
	fields := map[string]any{
		"completed_dates": dates,
		"last_checkin_at": now,
	}
	if firstCycleDone {
		// flipped in the same update as the date append, so no caller
		// can observe the two out of sync
		fields["first_cycle_completed"] = true
	}
	if err := s.store.Update(ctx, userID, fields); err != nil {
		metrics.CheckinTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	rec.CompletedDates = dates
	rec.LastCheckinAt = &now
	rec.FirstCycleCompleted = rec.FirstCycleCompleted || firstCycleDone

	// best-effort: other features degrade gracefully without the mirror
	if err := s.profiles.UpdateLastCheckin(ctx, userID, now); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("profile last_checkin mirror failed",
			"user_id", userID, "err", err)
	}

	awarded, err := s.awardCheckinPoints(ctx, userID, now, firstCycleDone)
	if err != nil {
		metrics.CheckinTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.fireMilestones(ctx, userID, firstEver, firstCycleDone)

	metrics.CheckinTotal.WithLabelValues("recorded").Inc()
	return &CheckinResult{
		Cycle:                   s.schedule.BuildCycleView(rec, now),
		FirstCycleJustCompleted: firstCycleDone,
		PointsAwarded:           awarded,
	}, nil
}

// awardCheckinPoints routes the award through the phase gate so the
// check-in phase shares the one late-completion policy. Unlike the
// profile mirror, a failed award fails the call.
func (s *Service) awardCheckinPoints(ctx context.Context, userID string, now time.Time, firstCycleDone bool) (int, error) {
	verdict := phase.Evaluate(s.cfg.GetPhaseByID(s.cfg.Checkin.PhaseID), now)
	if !verdict.ShouldAwardPoints {
		logctx.FromCtx(ctx, s.log).Infow("checkin recorded without points",
			"user_id", userID, "reason", verdict.Reason)
		return 0, nil
	}
	amount := s.cfg.Checkin.DailyPoints
	if firstCycleDone {
		amount += s.cfg.Checkin.FirstCycleBonusPoints
	}
	if err := s.points.Award(ctx, userID, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func (s *Service) fireMilestones(ctx context.Context, userID string, firstEver, firstCycleDone bool) {
	lg := logctx.FromCtx(ctx, s.log)
	if firstEver {
		if _, err := s.milestones.FireOnce(ctx, userID, milestone.FirstCheckin); err != nil {
			lg.Warnw("milestone write failed", "milestone", milestone.FirstCheckin, "err", err)
		}
	}
	if firstCycleDone {
		if _, err := s.milestones.FireOnce(ctx, userID, milestone.FirstCycleCompleted); err != nil {
			lg.Warnw("milestone write failed", "milestone", milestone.FirstCycleCompleted, "err", err)
		}
	}
}

// ScanRecordsRequest implements paginated/admin listing with filters.
type ScanRecordsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanRecordsResponse struct {
	Items []*models.CheckinRecord `json:"items"`
	Total int64                   `json:"total"`
}

func (s *Service) ScanRecords(ctx context.Context, req *ScanRecordsRequest) (*ScanRecordsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.CheckinRecord{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd{Filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count checkin records: %w", err)
	}

	var rows []*models.CheckinRecord
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list checkin records: %w", err)
	}

	return &ScanRecordsResponse{Items: rows, Total: total}, nil
}
