package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/pulse/internal/app/service/checkin"
	"github.com/gatherly/pulse/internal/app/service/points"
	"github.com/gatherly/pulse/internal/app/service/stats"
	"github.com/gatherly/pulse/pkg/response"
)

// @Summary      List Check-in Records (Admin)
// @Description  Retrieves a paginated and filterable list of check-in records.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body checkin.ScanRecordsRequest true "List request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListCheckinRecords
// @Router       /api/v1/admin/list_checkin_records [post]
func ApiListCheckinRecords(svc *checkin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkin.ScanRecordsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ScanRecords(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Engagement Statistics (Admin)
// @Description  Retrieves daily engagement statistics for the dashboard.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body stats.EngagementStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespEngagementStatistic
// @Router       /api/v1/admin/get_engagement_statistic [post]
func ApiGetEngagementStatistic(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stats.EngagementStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetEngagementStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Rebuild Leaderboard (Admin)
// @Description  Repopulates the Redis ranking from the profile table. Safe to run any time.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/rebuild_leaderboard [post]
func ApiRebuildLeaderboard(svc *points.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RebuildLeaderboard(c.Request.Context()); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterAdminRoutes(r gin.IRouter, checkinSvc *checkin.Service, statsSvc *stats.Service, pointsSvc *points.Service) {
	r.POST("/list_checkin_records", ApiListCheckinRecords(checkinSvc))
	r.POST("/get_engagement_statistic", ApiGetEngagementStatistic(statsSvc))
	r.POST("/rebuild_leaderboard", ApiRebuildLeaderboard(pointsSvc))
}
