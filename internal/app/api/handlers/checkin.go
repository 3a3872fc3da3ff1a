package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/pulse/internal/app/api/middleware"
	"github.com/gatherly/pulse/internal/app/service/checkin"
	"github.com/gatherly/pulse/pkg/response"
)

// @Summary      Get current check-in cycle
// @Description  Returns the caller's current cycle with per-day slot states. Creates the record on first visit and rolls the cycle over when its window has elapsed.
// @Tags         Checkin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespCycleView
// @Router       /api/v1/checkin/cycle [get]
func ApiGetCheckinCycle(svc *checkin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		view, err := svc.LoadCycle(c.Request.Context(), userID, time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(view))
	}
}

// @Summary      Check in for today
// @Description  Records today's check-in. Repeating the call on the same day returns current state without a second award.
// @Tags         Checkin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespCheckinResult
// @Router       /api/v1/checkin [post]
func ApiPerformCheckin(svc *checkin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		res, err := svc.PerformCheckin(c.Request.Context(), userID, time.Now())
		if err != nil {
			if errors.Is(err, checkin.ErrCheckinNotAvailable) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnavailable, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterCheckinRoutes(r gin.IRouter, svc *checkin.Service) {
	r.GET("/checkin/cycle", ApiGetCheckinCycle(svc))
	r.POST("/checkin", ApiPerformCheckin(svc))
}
