package controller

import (
	"github.com/gin-gonic/gin"

	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/internal/util"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

type trackRequest struct {
	EventType string                 `json:"eventType" binding:"required"`
	EventData map[string]interface{} `json:"eventData"`
}

// @Summary 上报前端事件
// @Tags 埋点
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body trackRequest true "事件"
// @Success 200 {object} util.Response
// @Router /api/analytics/events [post]
func (c *AnalyticsController) Track(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req trackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.AnalyticsService.Track(user.UserID, req.EventType, req.EventData)
	util.Success(ctx, nil)
}

// @Summary 平台概览
// @Description 用户数、七日活跃、素材数、完成数和完成最多的素材
// @Tags 管理端
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/stats [get]
func (c *AnalyticsController) GetAdminStats(ctx *gin.Context) {
	stats, err := c.AnalyticsService.GetAdminStats()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
