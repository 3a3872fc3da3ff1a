package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/types"
)

// Engagement statistic types served to the admin dashboard.
type StatisticType string

const (
	// Per-day check-in volume, unnested from the aggregated records.
	StatisticTypeDailyCheckinCount StatisticType = "daily_checkin_count"
	// Users with at least one check-in record.
	StatisticTypeTotalCheckinUsers StatisticType = "total_checkin_users"
	// Users who have finished a full cycle at least once.
	StatisticTypeFirstCycleCompletedCount StatisticType = "first_cycle_completed_count"
	// Per-day phase completion volume.
	StatisticTypeDailyPhaseCompletionCount StatisticType = "daily_phase_completion_count"
	// XP distribution summary over all profiles.
	StatisticTypeTotalPointsAwarded StatisticType = "total_points_awarded"
)

// Filter fields supported by certain statistic types.
type EngagementStatisticFilterType string

const (
	EngagementStatisticFilterTypePhaseID EngagementStatisticFilterType = "phase_id"
)

var filterTypes = []EngagementStatisticFilterType{
	EngagementStatisticFilterTypePhaseID,
}

var validFilters = map[EngagementStatisticFilterType][]StatisticType{
	EngagementStatisticFilterTypePhaseID: {StatisticTypeDailyPhaseCompletionCount},
}

type EngagementStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type EngagementStatisticRequest struct {
	Filters   []*types.CommonFilter          `json:"filters"`
	DataItems []*EngagementStatisticDataItem `json:"data_items"`
}

// GetFilters keeps only the filters applicable to statisticType.
func (f *EngagementStatisticRequest) GetFilters(statisticType StatisticType) types.FiltersAnd {
	var result types.FiltersAnd
	if f == nil {
		return result
	}
	for _, filter := range f.Filters {
		if statisticTypes, ok := validFilters[EngagementStatisticFilterType(filter.Field)]; ok {
			if lo.Contains(statisticTypes, statisticType) {
				result.Filters = append(result.Filters, filter)
			}
		} else {
			result.Filters = append(result.Filters, filter)
		}
	}
	return result
}

type EngagementStatisticResponseDataItem struct {
	Date  string `json:"date"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type EngagementStatisticResponse struct {
	DataItems map[StatisticType][]EngagementStatisticResponseDataItem `json:"data_items"`
}

// Service provides engagement reporting over the check-in and phase
// tables.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) getDailyCheckinCount(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	// completed_dates is a jsonb array of date strings; unnest it to
	// recover per-day volume from the aggregated records.
	err := s.db.WithContext(ctx).Raw(`
SELECT d.value AS date, COUNT(*) AS value
FROM checkin_record r, jsonb_array_elements_text(r.completed_dates) AS d(value)
GROUP BY d.value
ORDER BY d.value DESC
`).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalCheckinUsers(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.CheckinRecord{}).Count(&total).Error; err != nil {
		return nil, err
	}
	return []EngagementStatisticResponseDataItem{{Value: total}}, nil
}

func (s *Service) getFirstCycleCompletedCount(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.CheckinRecord{}).
		Where("first_cycle_completed = ?", true).
		Count(&total).Error; err != nil {
		return nil, err
	}
	return []EngagementStatisticResponseDataItem{{Value: total}}, nil
}

func (s *Service) getDailyPhaseCompletionCount(ctx context.Context, request *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.PhaseCompletion{}).TableName()).
		Select("TO_CHAR(completed_at, 'YYYY-MM-DD') as date, phase_id AS label, count(*) as value").
		Where(clause.Where{Exprs: []clause.Expression{request.GetFilters(StatisticTypeDailyPhaseCompletionCount)}}).
		Group("TO_CHAR(completed_at, 'YYYY-MM-DD')").
		Group("phase_id").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalPointsAwarded(ctx context.Context, _ *EngagementStatisticRequest) ([]EngagementStatisticResponseDataItem, error) {
	var results []EngagementStatisticResponseDataItem
	err := s.db.WithContext(ctx).Raw(`
SELECT COALESCE(SUM(total_points), 0) AS value, TO_CHAR(NOW(), 'YYYY-MM-DD') AS date
FROM user_profile
`).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getEngagementStatistic(ctx context.Context, request *EngagementStatisticRequest, dataItem *EngagementStatisticDataItem) ([]EngagementStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyCheckinCount:
		return s.getDailyCheckinCount(ctx, request)
	case StatisticTypeTotalCheckinUsers:
		return s.getTotalCheckinUsers(ctx, request)
	case StatisticTypeFirstCycleCompletedCount:
		return s.getFirstCycleCompletedCount(ctx, request)
	case StatisticTypeDailyPhaseCompletionCount:
		return s.getDailyPhaseCompletionCount(ctx, request)
	case StatisticTypeTotalPointsAwarded:
		return s.getTotalPointsAwarded(ctx, request)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

// GetEngagementStatistic fans requested data items out concurrently
// and assembles the response map.
func (s *Service) GetEngagementStatistic(ctx context.Context, request *EngagementStatisticRequest) (*EngagementStatisticResponse, error) {
	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan *lo.Entry[StatisticType, []EngagementStatisticResponseDataItem], len(request.DataItems))

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *EngagementStatisticDataItem) {
			defer wg.Done()
			// skip data items the supplied filters cannot apply to
			for _, filter := range request.Filters {
				ft := EngagementStatisticFilterType(filter.Field)
				if lo.Contains(filterTypes, ft) && !lo.Contains(validFilters[ft], di.ID) {
					resChan <- &lo.Entry[StatisticType, []EngagementStatisticResponseDataItem]{Key: di.ID, Value: nil}
					return
				}
			}
			res, err := s.getEngagementStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []EngagementStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}

	go func() { wg.Wait(); close(errChan); close(resChan) }()

	results := make(map[StatisticType][]EngagementStatisticResponseDataItem)
	for i := 0; i < len(request.DataItems); i++ {
		select {
		case err := <-errChan:
			if err != nil {
				return nil, err
			}
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &EngagementStatisticResponse{DataItems: results}, nil
}
