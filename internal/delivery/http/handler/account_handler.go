package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Despicable-at/robot-delivery-backend/internal/usecase/account"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.GET("", h.GetAllAccounts)
		userGroup.GET("/profile", h.GetProfile)
		userGroup.PUT("/pin", h.UpdateRobotPIN)
	}
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *AccountHandler) GetAllAccounts(c *gin.Context) {
	accounts, err := h.service.GetAllAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Accounts retrieved successfully", accounts)
}

func (h *AccountHandler) UpdateRobotPIN(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return
	}

	var req account.UpdatePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateRobotPIN(c.Request.Context(), accountID, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Robot PIN updated successfully", nil)
}

func accountIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("accountID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account not authenticated")
		return uuid.Nil, false
	}

	accountID, ok := value.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Invalid account identifier")
		return uuid.Nil, false
	}

	return accountID, true
}
