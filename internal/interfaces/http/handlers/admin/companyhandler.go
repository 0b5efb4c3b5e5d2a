package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcompare/bizcompare/internal/application/company/dto"
	"github.com/bizcompare/bizcompare/internal/application/company/usecases"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

// CompanyHandler owns the ingest surface. Writes are keyed by slug, so
// data pipelines can replay payloads safely.
type CompanyHandler struct {
	upsertUC *usecases.UpsertCompanyUseCase
	logger   logger.Interface
}

func NewCompanyHandler(upsertUC *usecases.UpsertCompanyUseCase) *CompanyHandler {
	return &CompanyHandler{
		upsertUC: upsertUC,
		logger:   logger.NewLogger(),
	}
}

// UpsertCompany creates or refreshes a company record.
func (h *CompanyHandler) UpsertCompany(c *gin.Context) {
	var cmd dto.UpsertCompanyCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.upsertUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result, "company created")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "company updated", result)
}
