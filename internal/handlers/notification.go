package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type registerDeviceRequest struct {
	Token string `json:"token" binding:"required"`
}

func (nh *NotificationHandler) RegisterDevice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := nh.notificationService.RegisterDevice(c.Request.Context(), userID, req.Token); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "device registered"})
}

func (nh *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notifications, err := nh.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"notifications": notifications})
}

func (nh *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notificationID, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		RespondError(c, apierr.Validation("invalid notification id"))
		return
	}
	notification, err := nh.notificationService.MarkRead(c.Request.Context(), userID, notificationID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"notification": notification})
}
