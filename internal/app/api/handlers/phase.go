package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/pulse/internal/app/api/middleware"
	"github.com/gatherly/pulse/internal/app/service/phase"
	"github.com/gatherly/pulse/pkg/response"
)

// @Summary      List phases
// @Description  Returns every configured phase with the caller's completion state and the current gate verdict.
// @Tags         Phase
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespPhaseList
// @Router       /api/v1/phases [get]
func ApiListPhases(svc *phase.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		res, err := svc.ListPhases(c.Request.Context(), userID, time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Complete a phase
// @Description  Marks the phase complete for the caller and awards its points per the activation window policy. Idempotent.
// @Tags         Phase
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Phase ID"
// @Success      200  {object}  handlers.RespPhaseCompletion
// @Router       /api/v1/phases/{id}/complete [post]
func ApiCompletePhase(svc *phase.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing user"))
			return
		}
		res, err := svc.CompletePhase(c.Request.Context(), userID, c.Param("id"), time.Now())
		if err != nil {
			switch {
			case errors.Is(err, phase.ErrPhaseNotFound):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			case errors.Is(err, phase.ErrCompletionNotAllowed):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnavailable, err.Error()))
			default:
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			}
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterPhaseRoutes(r gin.IRouter, svc *phase.Service) {
	r.GET("/phases", ApiListPhases(svc))
	r.POST("/phases/:id/complete", ApiCompletePhase(svc))
}
