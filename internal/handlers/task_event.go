package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/services"
)

type TaskEventHandler struct {
	taskEventService services.TaskEventService
}

func NewTaskEventHandler(taskEventService services.TaskEventService) *TaskEventHandler {
	return &TaskEventHandler{taskEventService: taskEventService}
}

func (th *TaskEventHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.TaskEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := th.taskEventService.Create(c.Request.Context(), userID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task_event": event})
}

func (th *TaskEventHandler) ListActive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := th.taskEventService.ListActive(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"task_events": events})
}

func (th *TaskEventHandler) ListAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := th.taskEventService.ListAll(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"task_events": events})
}

func (th *TaskEventHandler) ListCompleted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := th.taskEventService.ListCompleted(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"task_events": events})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (th *TaskEventHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		RespondError(c, apierr.Validation("invalid event id"))
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := th.taskEventService.UpdateStatus(c.Request.Context(), userID, eventID, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"task_event": event})
}
