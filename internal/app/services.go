package app

import (
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/clients/redis"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Preference   services.PreferenceService
	Quiz         services.QuizService
	TaskEvent    services.TaskEventService
	StudyPlan    services.StudyPlanService
	Resource     services.ResourceService
	Notification services.NotificationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, planLock redis.PlanLock) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(
			db, log,
			reposet.User, reposet.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		),
		User:       services.NewUserService(db, log, reposet.User, reposet.UserToken),
		Preference: services.NewPreferenceService(db, log, reposet.UserPreference),
		Quiz:       services.NewQuizService(db, log, reposet.QuizQuestion, reposet.QuizResult),
		TaskEvent:  services.NewTaskEventService(db, log, reposet.TaskEvent, reposet.Notification),
		StudyPlan: services.NewStudyPlanService(
			db, log,
			reposet.UserPreference, reposet.QuizResult, reposet.TaskEvent,
			reposet.StudyPlan, reposet.Notification,
			planLock,
		),
		Resource:     services.NewResourceService(db, log, reposet.Resource),
		Notification: services.NewNotificationService(db, log, reposet.Notification, reposet.DeviceToken),
	}
}
