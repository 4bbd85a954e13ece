package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/studyhive/studyhive-backend/internal/handlers"
	"github.com/studyhive/studyhive-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName         string
	AllowOrigins        []string
	AuthMiddleware      *middleware.AuthMiddleware
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	PreferenceHandler   *handlers.PreferenceHandler
	QuizHandler         *handlers.QuizHandler
	TaskEventHandler    *handlers.TaskEventHandler
	StudyPlanHandler    *handlers.StudyPlanHandler
	ResourceHandler     *handlers.ResourceHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	api.POST("/logout", cfg.AuthHandler.Logout)

	// User
	api.GET("/user", cfg.UserHandler.GetProfile)
	api.PUT("/user", cfg.UserHandler.UpdateProfile)
	api.DELETE("/user", cfg.UserHandler.DeleteProfile)

	// Preferences
	api.POST("/preferences", cfg.PreferenceHandler.Save)
	api.GET("/preferences", cfg.PreferenceHandler.Get)

	// Quiz
	api.POST("/quiz/questions", cfg.QuizHandler.AddQuestions)
	api.GET("/quiz/questions", cfg.QuizHandler.GetQuestions)
	api.DELETE("/quiz/questions/:question_id", cfg.QuizHandler.DeleteQuestion)
	api.POST("/quiz/results", cfg.QuizHandler.SaveResult)
	api.GET("/quiz/results", cfg.QuizHandler.GetResultsSummary)
	api.GET("/quiz/overall", cfg.QuizHandler.GetOverallPercentage)

	// Task events
	api.POST("/task-events", cfg.TaskEventHandler.Create)
	api.GET("/task-events", cfg.TaskEventHandler.ListActive)
	api.GET("/task-events/all", cfg.TaskEventHandler.ListAll)
	api.GET("/task-events/completed", cfg.TaskEventHandler.ListCompleted)
	api.PUT("/task-events/:event_id/status", cfg.TaskEventHandler.UpdateStatus)

	// Study plans
	api.POST("/study-plan", cfg.StudyPlanHandler.Generate)
	api.GET("/study-plan/:event_id", cfg.StudyPlanHandler.GetByTaskEvent)
	api.PUT("/study-plan/:event_id", cfg.StudyPlanHandler.UpdatePlan)
	api.GET("/study-plans", cfg.StudyPlanHandler.ListByUser)
	api.POST("/study-plans/update", cfg.StudyPlanHandler.Regenerate)

	// Resources
	api.POST("/resources", cfg.ResourceHandler.Add)
	api.GET("/resources", cfg.ResourceHandler.GetBySubjectLevel)

	// Notifications
	api.POST("/notifications/device", cfg.NotificationHandler.RegisterDevice)
	api.GET("/notifications", cfg.NotificationHandler.List)
	api.PUT("/notifications/:notification_id/read", cfg.NotificationHandler.MarkRead)

	return router
}
