package controller

import (
	"github.com/gin-gonic/gin"

	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/internal/util"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type loginRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// @Summary Telegram 登录
// @Description 校验 Mini App 的 initData，首次登录自动建档
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body loginRequest true "initData 原文"
// @Success 200 {object} util.Response
// @Router /api/auth/telegram [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req.InitData)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
