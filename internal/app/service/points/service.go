package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/logctx"
	"github.com/gatherly/pulse/pkg/metrics"
)

const leaderboardKey = "pulse:leaderboard"

// LeaderboardEntry is one ranking row.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	TotalPoints int    `json:"total_points"`
}

type Service struct {
	log    *zap.SugaredLogger
	ledger Ledger
	rdb    *redis.Client
	db     *gorm.DB
}

func NewService(log *zap.SugaredLogger, ledger Ledger, rdb *redis.Client, db *gorm.DB) *Service {
	return &Service{log: log, ledger: ledger, rdb: rdb, db: db}
}

// Award applies an XP delta to the user's total. Negative or zero
// amounts are a no-op; this path never subtracts.
//
// The atomic increment is preferred. If the ledger reports it
// unavailable, a read-modify-write fallback runs instead — a known
// consistency weakness under concurrent awards, accepted only as a
// degraded mode and surfaced through logs and the fallback counter.
func (s *Service) Award(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return nil
	}

	err := s.ledger.IncrementTotal(ctx, userID, amount)
	switch {
	case err == nil:
		metrics.PointAwardTotal.WithLabelValues("atomic", "ok").Inc()
	case errors.Is(err, ErrAtomicUnavailable):
		logctx.FromCtx(ctx, s.log).Warnw("atomic point award unavailable, using read-modify-write",
			"user_id", userID, "amount", amount)
		if ferr := s.awardFallback(ctx, userID, amount); ferr != nil {
			metrics.PointAwardTotal.WithLabelValues("fallback", "error").Inc()
			return fmt.Errorf("%w: %v", ErrPointAwardFailed, ferr)
		}
		metrics.PointAwardTotal.WithLabelValues("fallback", "ok").Inc()
	default:
		metrics.PointAwardTotal.WithLabelValues("atomic", "error").Inc()
		return fmt.Errorf("%w: %v", ErrPointAwardFailed, err)
	}

	s.mirrorLeaderboard(ctx, userID, amount)
	return nil
}

func (s *Service) awardFallback(ctx context.Context, userID string, amount int) error {
	total, err := s.ledger.ReadTotal(ctx, userID)
	if err != nil {
		return err
	}
	return s.ledger.WriteTotal(ctx, userID, total+amount)
}

// mirrorLeaderboard keeps the Redis ranking ZSET in step. Best-effort:
// ranking reads fall back to SQL when the mirror is behind or down.
func (s *Service) mirrorLeaderboard(ctx context.Context, userID string, amount int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.ZIncrBy(ctx, leaderboardKey, float64(amount), userID).Err(); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("leaderboard mirror failed", "user_id", userID, "err", err)
	}
}

// Total returns the user's XP total.
func (s *Service) Total(ctx context.Context, userID string) (int, error) {
	return s.ledger.ReadTotal(ctx, userID)
}

// Leaderboard returns the top users by XP, reading Redis first and
// falling back to the profile table.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	if s.rdb != nil {
		zs, err := s.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil && len(zs) > 0 {
			return lo.Map(zs, func(z redis.Z, i int) *LeaderboardEntry {
				return &LeaderboardEntry{
					Rank:        i + 1,
					UserID:      fmt.Sprint(z.Member),
					TotalPoints: int(z.Score),
				}
			}), nil
		}
		if err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("leaderboard read from redis failed, using sql", "err", err)
		}
	}

	if s.db == nil {
		return nil, nil
	}
	var rows []*models.UserProfile
	if err := s.db.WithContext(ctx).
		Order("total_points desc, updated_at asc").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	return lo.Map(rows, func(p *models.UserProfile, i int) *LeaderboardEntry {
		return &LeaderboardEntry{Rank: i + 1, UserID: p.UserID, TotalPoints: p.TotalPoints}
	}), nil
}

// RebuildLeaderboard repopulates the Redis ZSET from the profile
// table. Used after Redis data loss; safe to run any time.
func (s *Service) RebuildLeaderboard(ctx context.Context) error {
	if s.rdb == nil || s.db == nil {
		return nil
	}
	var rows []*models.UserProfile
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	members := lo.Map(rows, func(p *models.UserProfile, _ int) redis.Z {
		return redis.Z{Member: p.UserID, Score: float64(p.TotalPoints)}
	})
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, leaderboardKey)
	pipe.ZAdd(ctx, leaderboardKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	s.log.Infow("leaderboard rebuilt", "users", len(rows), "at", time.Now())
	return nil
}
