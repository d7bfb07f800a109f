package app

import (
	"vocab_edu_backend/docs"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/middleware"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	// 个人资料
	group.GET("/profile", c.auth.GetProfile)
	group.PUT("/profile", c.user.UpdateProfile)
	group.PUT("/profile/password", c.user.ChangePassword)
	group.POST("/profile/avatar", c.user.UploadAvatar)

	// 词汇书与选书
	books := group.Group("/books")
	{
		books.GET("", c.book.ListBooks)
		books.GET("/current", c.book.GetCurrentBook)
		books.GET("/mine", c.book.ListUserBooks)
		books.POST("/select", c.book.SelectBook)
		books.GET("/:id", c.book.GetBook)
		books.GET("/:id/words", c.book.ListWords)
		books.GET("/:id/progress", c.book.GetBookProgress)
		books.DELETE("/:id/select", c.book.DeselectBook)
	}

	// 学词与复习
	study := group.Group("/study")
	{
		study.GET("/new-words", c.study.GetNewWords)
		study.GET("/due-words", c.study.GetDueWords)
		study.POST("/answer", c.study.AnswerWord)
		study.GET("/progress/:wordId", c.study.GetWordProgress)
	}

	// 统计
	stats := group.Group("/stats")
	{
		stats.GET("", c.stats.GetStats)
		stats.GET("/today", c.stats.GetTodayProgress)
		stats.GET("/weekly", c.stats.GetWeeklyData)
		stats.GET("/sessions", c.stats.GetSessions)
		stats.POST("/sessions", c.stats.RecordSession)
		stats.POST("/recompute", c.stats.RecomputeStats)
	}

	// 设置
	group.GET("/settings", c.settings.GetSettings)
	group.PUT("/settings", c.settings.UpdateSettings)
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/books", c.book.CreateBook)
		admin.PUT("/books/:id", c.book.UpdateBook)
		admin.DELETE("/books/:id", c.book.DeleteBook)
		admin.POST("/books/:id/words", c.book.AddWord)
		admin.PUT("/words/:wordId", c.book.UpdateWord)
		admin.DELETE("/words/:wordId", c.book.DeleteWord)
		admin.POST("/words/:wordId/audio", c.book.UploadWordAudio)
	}
}
