package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) AddQuestions(c *gin.Context) {
	var questions []services.QuestionInput
	if err := c.ShouldBindJSON(&questions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := qh.quizService.AddQuestions(c.Request.Context(), questions); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "questions added"})
}

func (qh *QuizHandler) GetQuestions(c *gin.Context) {
	subject := c.Query("subject")
	level := c.Query("level")
	questions, err := qh.quizService.GetQuestions(c.Request.Context(), subject, level)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

func (qh *QuizHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		RespondError(c, apierr.Validation("invalid question id"))
		return
	}
	if err := qh.quizService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "question deleted"})
}

type saveResultRequest struct {
	Subject string `json:"subject" binding:"required"`
	Level   string `json:"level" binding:"required"`
	Results string `json:"results" binding:"required"`
}

func (qh *QuizHandler) SaveResult(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req saveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := qh.quizService.SaveResult(c.Request.Context(), userID, req.Subject, req.Level, req.Results)
	if err != nil {
		RespondError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "result saved"})
		return
	}
	RespondOK(c, gin.H{"message": "result updated"})
}

func (qh *QuizHandler) GetResultsSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := qh.quizService.GetResultsSummary(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (qh *QuizHandler) GetOverallPercentage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	overall, err := qh.quizService.OverallPercentage(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"overall_percentage": overall})
}
