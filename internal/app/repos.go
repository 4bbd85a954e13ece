package app

import (
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	UserPreference repos.UserPreferenceRepo
	QuizQuestion   repos.QuizQuestionRepo
	QuizResult     repos.QuizResultRepo
	TaskEvent      repos.TaskEventRepo
	StudyPlan      repos.StudyPlanRepo
	Resource       repos.ResourceRepo
	Notification   repos.NotificationRepo
	DeviceToken    repos.DeviceTokenRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		UserPreference: repos.NewUserPreferenceRepo(db, log),
		QuizQuestion:   repos.NewQuizQuestionRepo(db, log),
		QuizResult:     repos.NewQuizResultRepo(db, log),
		TaskEvent:      repos.NewTaskEventRepo(db, log),
		StudyPlan:      repos.NewStudyPlanRepo(db, log),
		Resource:       repos.NewResourceRepo(db, log),
		Notification:   repos.NewNotificationRepo(db, log),
		DeviceToken:    repos.NewDeviceTokenRepo(db, log),
	}
}
