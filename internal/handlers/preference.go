package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive-backend/internal/services"
)

type PreferenceHandler struct {
	preferenceService services.PreferenceService
}

func NewPreferenceHandler(preferenceService services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

func (ph *PreferenceHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input services.PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := ph.preferenceService.Save(c.Request.Context(), userID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "preferences saved"})
		return
	}
	RespondOK(c, gin.H{"message": "preferences updated"})
}

func (ph *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	pref, err := ph.preferenceService.Get(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pref)
}
