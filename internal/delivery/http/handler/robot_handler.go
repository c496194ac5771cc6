package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Despicable-at/robot-delivery-backend/internal/usecase/robot"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

type RobotHandler struct {
	service *robot.Service
}

func NewRobotHandler(service *robot.Service) *RobotHandler {
	return &RobotHandler{service: service}
}

func (h *RobotHandler) RegisterRoutes(router *gin.RouterGroup) {
	robotGroup := router.Group("/robot")
	{
		robotGroup.GET("/status", h.GetStatus)
		robotGroup.PUT("/status", h.UpdateStatus)
	}
}

func (h *RobotHandler) GetStatus(c *gin.Context) {
	status, err := h.service.GetStatus(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Robot status retrieved", status)
}

func (h *RobotHandler) UpdateStatus(c *gin.Context) {
	var req robot.UpdateStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Notes != nil {
		sanitized := utils.SanitizeText(*req.Notes)
		req.Notes = &sanitized
	}

	if err := h.service.UpdateStatus(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Robot status updated", nil)
}
