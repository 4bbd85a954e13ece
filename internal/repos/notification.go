package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, notificationID uuid.UUID) (*types.Notification, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error)
	Update(ctx context.Context, tx *gorm.DB, notification *types.Notification) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error) {
	if len(notifications) == 0 {
		return []*types.Notification{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, notificationID uuid.UUID) (*types.Notification, error) {
	var result types.Notification
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error) {
	var results []*types.Notification
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *notificationRepo) Update(ctx context.Context, tx *gorm.DB, notification *types.Notification) error {
	return r.conn(tx).WithContext(ctx).Save(notification).Error
}

type DeviceTokenRepo interface {
	// Upsert stores one device token per user, replacing any previous one.
	Upsert(ctx context.Context, tx *gorm.DB, token *types.DeviceToken) error
}

type deviceTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeviceTokenRepo(db *gorm.DB, baseLog *logger.Logger) DeviceTokenRepo {
	return &deviceTokenRepo{db: db, log: baseLog.With("repo", "DeviceTokenRepo")}
}

func (r *deviceTokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *deviceTokenRepo) Upsert(ctx context.Context, tx *gorm.DB, token *types.DeviceToken) error {
	conn := r.conn(tx).WithContext(ctx)

	var existing types.DeviceToken
	err := conn.Where("user_id = ?", token.UserID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		token.ID = existing.ID
		token.CreatedAt = existing.CreatedAt
	}

	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(token).Error
}
