package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/pulse/internal/app/api/middleware"
	"github.com/gatherly/pulse/internal/app/service/points"
	"github.com/gatherly/pulse/pkg/response"
)

type RankingResponse struct {
	Entries []*points.LeaderboardEntry `json:"entries"`
	// MyPoints is the caller's own total, present even when they are
	// outside the returned range.
	MyPoints int `json:"my_points"`
}

// @Summary      XP leaderboard
// @Description  Returns the top users by XP plus the caller's own total.
// @Tags         Ranking
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Number of entries (default 20)"
// @Success      200  {object}  handlers.RespRanking
// @Router       /api/v1/ranking [get]
func ApiGetRanking(svc *points.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))

		entries, err := svc.Leaderboard(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		mine, err := svc.Total(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&RankingResponse{Entries: entries, MyPoints: mine}))
	}
}

func RegisterRankingRoutes(r gin.IRouter, svc *points.Service) {
	r.GET("/ranking", ApiGetRanking(svc))
}
