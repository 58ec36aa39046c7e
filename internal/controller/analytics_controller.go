package controller

import (
	"context"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type analyticsService interface {
	HostAnalytics(ctx context.Context, hostID string) (*repository.HostStats, error)
}

type AnalyticsController struct {
	AnalyticsService analyticsService
}

func NewAnalyticsController(analyticsService analyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// HostAnalytics godoc
// @Summary Sales and audience figures for the calling host
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=repository.HostStats}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response "Not a host account"
// @Router /host [post]
func (c *AnalyticsController) HostAnalytics(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	stats, err := c.AnalyticsService.HostAnalytics(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
