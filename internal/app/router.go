package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/middleware"
	"oriental_miniapp_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/telegram", c.auth.Login)
	}

	// 登录后的路由。ActivityMiddleware 在处理请求前推进连续天数。
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(s.user))
	{
		authGroup.GET("/users/me", c.user.Me)
		authGroup.GET("/users/me/stats", c.user.MyStats)
		authGroup.PUT("/users/me/direction", c.user.SetDirection)

		authGroup.GET("/directions", c.content.ListDirections)
		authGroup.GET("/directions/:id/courses", c.content.ListCourses)
		authGroup.GET("/courses/:id", c.content.GetCourse)
		authGroup.GET("/courses/:id/progress", c.progress.ListMineByCourse)
		authGroup.GET("/materials/:id", c.content.GetMaterial)

		authGroup.POST("/materials/:id/progress", c.progress.RecordProgress)
		authGroup.GET("/progress", c.progress.ListMine)

		authGroup.POST("/materials/:id/favorite", c.user.AddFavorite)
		authGroup.DELETE("/materials/:id/favorite", c.user.RemoveFavorite)
		authGroup.GET("/favorites", c.user.ListFavorites)

		authGroup.GET("/notes", c.user.ListNotes)
		authGroup.POST("/notes", c.user.CreateNote)
		authGroup.PUT("/notes/:id", c.user.UpdateNote)
		authGroup.DELETE("/notes/:id", c.user.DeleteNote)

		authGroup.GET("/achievements", c.achievement.GetUserAchievements)
		authGroup.GET("/leaderboard", c.achievement.GetLeaderboard)
		authGroup.GET("/challenges/today", c.challenge.GetToday)

		authGroup.POST("/analytics/events", c.analytics.Track)
	}

	// 管理端
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		adminGroup.GET("/stats", c.analytics.GetAdminStats)

		adminGroup.POST("/directions", c.content.CreateDirection)
		adminGroup.PUT("/directions/:id", c.content.UpdateDirection)
		adminGroup.DELETE("/directions/:id", c.content.DeleteDirection)

		adminGroup.POST("/courses", c.content.CreateCourse)
		adminGroup.PUT("/courses/:id", c.content.UpdateCourse)
		adminGroup.DELETE("/courses/:id", c.content.DeleteCourse)

		adminGroup.POST("/materials", c.content.CreateMaterial)
		adminGroup.PUT("/materials/:id", c.content.UpdateMaterial)
		adminGroup.DELETE("/materials/:id", c.content.DeleteMaterial)

		adminGroup.POST("/upload", c.content.UploadFile)
	}
}
