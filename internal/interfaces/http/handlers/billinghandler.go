package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcompare/bizcompare/internal/application/billing/dto"
	"github.com/bizcompare/bizcompare/internal/application/billing/usecases"
	"github.com/bizcompare/bizcompare/internal/infrastructure/billing"
	"github.com/bizcompare/bizcompare/internal/shared/constants"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

type BillingHandler struct {
	verifier         *billing.Verifier
	handleEventUC    *usecases.HandleBillingEventUseCase
	createCheckoutUC *usecases.CreateCheckoutUseCase
	logger           logger.Interface
}

func NewBillingHandler(
	verifier *billing.Verifier,
	handleEventUC *usecases.HandleBillingEventUseCase,
	createCheckoutUC *usecases.CreateCheckoutUseCase,
) *BillingHandler {
	return &BillingHandler{
		verifier:         verifier,
		handleEventUC:    handleEventUC,
		createCheckoutUC: createCheckoutUC,
		logger:           logger.NewLogger(),
	}
}

// Webhook receives provider events. The signature covers the raw body,
// so it is read before any JSON decoding. Unverifiable payloads are
// rejected and never processed; processing failures return 500 so the
// provider redelivers.
func (h *BillingHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := c.GetHeader(constants.HeaderBillingSignature)
	if err := h.verifier.Verify(body, signature); err != nil {
		h.logger.Warnw("rejected billing webhook", "error", err, "client_ip", c.ClientIP())
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	event, err := billing.ParseEvent(body)
	if err != nil {
		h.logger.Warnw("undecodable billing event", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid event payload")
		return
	}

	if err := h.handleEventUC.Execute(c.Request.Context(), event); err != nil {
		h.logger.Errorw("failed to process billing event",
			"event_id", event.ID, "type", event.Type, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event processed", gin.H{"received": true})
}

type createCheckoutRequest struct {
	PriceID string `json:"price_id" binding:"required"`
}

// CreateCheckout opens a hosted checkout session for the caller.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "price_id is required")
		return
	}

	authID := c.GetString(constants.ContextKeyAuthID)
	result, err := h.createCheckoutUC.Execute(c.Request.Context(), dto.CreateCheckoutCommand{
		AuthID:  authID,
		PriceID: req.PriceID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout session created", result)
}
