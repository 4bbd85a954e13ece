package app

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:         cfg.ServiceName,
		AllowOrigins:        cfg.AllowOrigins,
		AuthMiddleware:      middlewareset.Auth,
		AuthHandler:         handlerset.Auth,
		UserHandler:         handlerset.User,
		PreferenceHandler:   handlerset.Preference,
		QuizHandler:         handlerset.Quiz,
		TaskEventHandler:    handlerset.TaskEvent,
		StudyPlanHandler:    handlerset.StudyPlan,
		ResourceHandler:     handlerset.Resource,
		NotificationHandler: handlerset.Notification,
	})
}
