package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcompare/bizcompare/internal/application/subscriber/usecases"
	"github.com/bizcompare/bizcompare/internal/shared/constants"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

type SubscriberHandler struct {
	getProfileUC *usecases.GetProfileUseCase
	logger       logger.Interface
}

func NewSubscriberHandler(getProfileUC *usecases.GetProfileUseCase) *SubscriberHandler {
	return &SubscriberHandler{
		getProfileUC: getProfileUC,
		logger:       logger.NewLogger(),
	}
}

// Me returns the caller's account, plan, and remaining allowance.
func (h *SubscriberHandler) Me(c *gin.Context) {
	authID := c.GetString(constants.ContextKeyAuthID)
	if authID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated identity")
		return
	}

	profile, err := h.getProfileUC.Execute(c.Request.Context(), authID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile retrieved successfully", profile)
}
