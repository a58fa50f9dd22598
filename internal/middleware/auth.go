package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/internal/util"
	"oriental_miniapp_backend/pkg/logger"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActivityMiddleware 在请求处理前同步推进连续学习天数。
// 同一天内的重复请求在服务层直接返回，不产生写入。
// 失败只打日志，不阻断请求。
func ActivityMiddleware(userSvc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			if _, err := userSvc.TouchStreak(claims.UserID); err != nil {
				logger.Log.Warn("连续天数更新失败",
					zap.Uint("user_id", claims.UserID),
					zap.Error(err))
			}
		}
		c.Next()
	}
}
