package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/services"
)

type StudyPlanHandler struct {
	studyPlanService services.StudyPlanService
}

func NewStudyPlanHandler(studyPlanService services.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{studyPlanService: studyPlanService}
}

func (sh *StudyPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.GeneratePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.TaskEventID == uuid.Nil {
		RespondError(c, apierr.Validation("id is required"))
		return
	}
	result, err := sh.studyPlanService.Generate(c.Request.Context(), userID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (sh *StudyPlanHandler) GetByTaskEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskEventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		RespondError(c, apierr.Validation("invalid event id"))
		return
	}
	plan, err := sh.studyPlanService.GetByTaskEvent(c.Request.Context(), userID, taskEventID)
	if err != nil {
		RespondError(c, err)
		return
	}
	var days []scheduler.DayPlan
	if err := json.Unmarshal(plan.Plan, &days); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"study_plan_id": plan.ID,
		"subject":       plan.Subject,
		"study_type":    plan.StudyType,
		"study_plan":    days,
	})
}

func (sh *StudyPlanHandler) ListByUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plans, err := sh.studyPlanService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"study_plans": plans})
}

type updatePlanRequest struct {
	StudyPlan []scheduler.DayPlan `json:"study_plan" binding:"required"`
}

func (sh *StudyPlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskEventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		RespondError(c, apierr.Validation("invalid event id"))
		return
	}
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := sh.studyPlanService.UpdatePlan(c.Request.Context(), userID, taskEventID, req.StudyPlan)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

type regenerateRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// Regenerate rebuilds every pending plan for a subject. The status maps to
// 200 when every task rebuilt, 207 when some failed, 500 when all failed.
func (sh *StudyPlanHandler) Regenerate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := sh.studyPlanService.RegenerateForSubject(c.Request.Context(), userID, req.Subject)
	if err != nil {
		RespondError(c, err)
		return
	}
	switch result.Status {
	case services.BatchStatusEmpty:
		RespondOK(c, gin.H{
			"message":       "no pending tasks for subject",
			"updated_plans": result.UpdatedPlans,
			"errors":        result.Errors,
		})
	case services.BatchStatusPartial:
		c.JSON(http.StatusMultiStatus, result)
	case services.BatchStatusFailed:
		c.JSON(http.StatusInternalServerError, result)
	default:
		RespondOK(c, result)
	}
}
