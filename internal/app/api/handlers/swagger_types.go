package handlers

import (
	"github.com/gatherly/pulse/internal/app/service/checkin"
	"github.com/gatherly/pulse/internal/app/service/phase"
	"github.com/gatherly/pulse/internal/app/service/stats"
	"github.com/gatherly/pulse/internal/models"
	"github.com/gatherly/pulse/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespCycleView wraps checkin.CycleView in the standard envelope.
type RespCycleView struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    checkin.CycleView        `json:"data"`
}

// RespCheckinResult wraps checkin.CheckinResult in the standard envelope.
type RespCheckinResult struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    checkin.CheckinResult    `json:"data"`
}

// RespPhaseList wraps the phase status list in the standard envelope.
type RespPhaseList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []phase.PhaseStatus      `json:"data"`
}

// RespPhaseCompletion wraps phase.CompletionResult in the standard envelope.
type RespPhaseCompletion struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    phase.CompletionResult   `json:"data"`
}

// RespRanking wraps RankingResponse in the standard envelope.
type RespRanking struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    RankingResponse          `json:"data"`
}

// RespMilestoneList wraps the user's milestones in the standard envelope.
type RespMilestoneList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.UserMilestone   `json:"data"`
}

// RespListCheckinRecords wraps checkin.ScanRecordsResponse in the standard envelope.
type RespListCheckinRecords struct {
	Code    response.APIResponseCode    `json:"code"`
	Message string                      `json:"message"`
	Data    checkin.ScanRecordsResponse `json:"data"`
}

// RespEngagementStatistic wraps stats.EngagementStatisticResponse in the standard envelope.
type RespEngagementStatistic struct {
	Code    response.APIResponseCode          `json:"code"`
	Message string                            `json:"message"`
	Data    stats.EngagementStatisticResponse `json:"data"`
}
