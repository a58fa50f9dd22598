package controller

import (
	"github.com/gin-gonic/gin"

	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/internal/util"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// @Summary 今日挑战
// @Description 当天的挑战及我的进度
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/challenges/today [get]
func (c *ChallengeController) GetToday(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.ChallengeService.GetToday(user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
