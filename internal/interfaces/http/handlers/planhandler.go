package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subscriberDTO "github.com/bizcompare/bizcompare/internal/application/subscriber/dto"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

type PlanHandler struct{}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

type planResponse struct {
	Tier         string               `json:"tier"`
	Name         string               `json:"name"`
	PriceMonthly float64              `json:"price_monthly"`
	PriceYearly  float64              `json:"price_yearly"`
	Features     []string             `json:"features"`
	Limits       subscriberDTO.Limits `json:"limits"`
}

// GetPublicPlans returns the sellable tier catalog.
func (h *PlanHandler) GetPublicPlans(c *gin.Context) {
	plans := subscription.PublicPlans()

	response := make([]planResponse, 0, len(plans))
	for _, plan := range plans {
		response = append(response, planResponse{
			Tier:         string(plan.Tier),
			Name:         plan.Name,
			PriceMonthly: plan.PriceMonthly,
			PriceYearly:  plan.PriceYearly,
			Features:     plan.Features,
			Limits:       subscriberDTO.ToLimits(plan.Limits),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "plans retrieved successfully", response)
}
