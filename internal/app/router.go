package app

import (
	"ecolearn_backend/docs"
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/middleware"
	"ecolearn_backend/internal/model"

	"ecolearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		user := public.Group("/user")
		{
			user.POST("/register", c.auth.RegisterStudent)
			user.POST("/login", c.auth.Login)
			user.GET("/logout", c.auth.Logout)
		}

		teacher := public.Group("/teacher")
		{
			teacher.POST("/register", c.auth.RegisterTeacher)
			teacher.POST("/login", c.auth.Login)
			teacher.GET("/logout", c.auth.Logout)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)
	rg.POST("/user/checkin", c.user.Checkin)

	rg.GET("/lessons", c.lesson.ListLessons)
	rg.GET("/lessons/:id", c.lesson.GetLesson)
	rg.POST("/lessons/:id/quiz", c.lesson.SubmitQuiz)
	rg.POST("/lessons/:id/complete", c.lesson.CompleteLesson)

	rg.GET("/challenges", c.challenge.ListChallenges)
	rg.GET("/challenges/:id", c.challenge.GetChallenge)
	rg.POST("/challenges/:id/join", c.challenge.JoinChallenge)

	rg.GET("/badges", c.badge.ListBadges)
	rg.GET("/badges/earned", c.badge.ListEarnedBadges)

	rg.GET("/leaderboard", c.leaderboard.GetLeaderboard)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/lessons", c.content.CreateLesson)
		teacher.PUT("/lessons/:id", c.content.UpdateLesson)
		teacher.DELETE("/lessons/:id", c.content.DeleteLesson)
		teacher.POST("/lessons/:id/questions", c.content.AddQuestion)
		teacher.DELETE("/questions/:questionId", c.content.RemoveQuestion)
		teacher.POST("/lessons/:id/video", c.content.UploadLessonVideo)

		teacher.POST("/challenges", c.content.CreateChallenge)
		teacher.PUT("/challenges/:id", c.content.UpdateChallenge)
		teacher.DELETE("/challenges/:id", c.content.DeleteChallenge)
	}
}
