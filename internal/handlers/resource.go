package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive-backend/internal/services"
)

type ResourceHandler struct {
	resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (rh *ResourceHandler) Add(c *gin.Context) {
	var inputs []services.ResourceInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resources, err := rh.resourceService.Add(c.Request.Context(), inputs)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resources": resources})
}

func (rh *ResourceHandler) GetBySubjectLevel(c *gin.Context) {
	resources, err := rh.resourceService.GetBySubjectLevel(c.Request.Context(), c.Query("subject"), c.Query("study_level"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"resources": resources})
}
