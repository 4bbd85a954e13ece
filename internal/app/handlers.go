package app

import (
	"github.com/studyhive/studyhive-backend/internal/handlers"
	"github.com/studyhive/studyhive-backend/internal/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Preference   *handlers.PreferenceHandler
	Quiz         *handlers.QuizHandler
	TaskEvent    *handlers.TaskEventHandler
	StudyPlan    *handlers.StudyPlanHandler
	Resource     *handlers.ResourceHandler
	Notification *handlers.NotificationHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(serviceset.Auth),
		User:         handlers.NewUserHandler(serviceset.User),
		Preference:   handlers.NewPreferenceHandler(serviceset.Preference),
		Quiz:         handlers.NewQuizHandler(serviceset.Quiz),
		TaskEvent:    handlers.NewTaskEventHandler(serviceset.TaskEvent),
		StudyPlan:    handlers.NewStudyPlanHandler(serviceset.StudyPlan),
		Resource:     handlers.NewResourceHandler(serviceset.Resource),
		Notification: handlers.NewNotificationHandler(serviceset.Notification),
	}
}
