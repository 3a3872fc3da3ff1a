package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/pulse/internal/app/api/middleware"
	"github.com/gatherly/pulse/internal/app/service/milestone"
	"github.com/gatherly/pulse/pkg/response"
)

type AckMilestoneRequest struct {
	Milestone string `json:"milestone" binding:"required"`
}

// @Summary      List milestones
// @Description  Returns every milestone fired for the caller, with ack state.
// @Tags         Milestone
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespMilestoneList
// @Router       /api/v1/milestones [get]
func ApiListMilestones(svc *milestone.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		rows, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Acknowledge a milestone
// @Description  Marks the milestone's one-time UI as shown so clients stop replaying it.
// @Tags         Milestone
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AckMilestoneRequest true "Milestone to acknowledge"
// @Success      200  {object}  map[string]string
// @Router       /api/v1/milestones/ack [post]
func ApiAckMilestone(svc *milestone.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		var req AckMilestoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := svc.Ack(c.Request.Context(), userID, req.Milestone); err != nil {
			if errors.Is(err, milestone.ErrMilestoneNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ok"}))
	}
}

func RegisterMilestoneRoutes(r gin.IRouter, svc *milestone.Service) {
	r.GET("/milestones", ApiListMilestones(svc))
	r.POST("/milestones/ack", ApiAckMilestone(svc))
}
