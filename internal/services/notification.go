package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type NotificationService interface {
	// RegisterDevice stores the push token for the user, replacing any
	// previous one.
	RegisterDevice(ctx context.Context, userID uuid.UUID, token string) error
	List(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*types.Notification, error)
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
	deviceTokenRepo  repos.DeviceTokenRepo
}

func NewNotificationService(db *gorm.DB, log *logger.Logger, notificationRepo repos.NotificationRepo, deviceTokenRepo repos.DeviceTokenRepo) NotificationService {
	return &notificationService{
		db:               db,
		log:              log.With("service", "NotificationService"),
		notificationRepo: notificationRepo,
		deviceTokenRepo:  deviceTokenRepo,
	}
}

func (ns *notificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, token string) error {
	if token == "" {
		return apierr.Validation("device token is required")
	}
	err := ns.deviceTokenRepo.Upsert(ctx, nil, &types.DeviceToken{
		ID:     uuid.New(),
		UserID: userID,
		Token:  token,
	})
	if err != nil {
		return fmt.Errorf("save device token: %w", err)
	}
	ns.log.Info("device token registered", "user_id", userID)
	return nil
}

func (ns *notificationService) List(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	return ns.notificationRepo.ListByUser(ctx, nil, userID)
}

func (ns *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*types.Notification, error) {
	notification, err := ns.notificationRepo.GetByID(ctx, nil, userID, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("notification not found")
		}
		return nil, fmt.Errorf("retrieve notification: %w", err)
	}
	if notification.IsRead {
		return notification, nil
	}
	notification.IsRead = true
	if err := ns.notificationRepo.Update(ctx, nil, notification); err != nil {
		return nil, fmt.Errorf("update notification: %w", err)
	}
	return notification, nil
}
