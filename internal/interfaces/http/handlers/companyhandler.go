package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bizcompare/bizcompare/internal/application/company/dto"
	"github.com/bizcompare/bizcompare/internal/application/company/usecases"
	"github.com/bizcompare/bizcompare/internal/application/entitlement"
	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/interfaces/http/middleware"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

// ViewCache holds assembled company views. Cached views are
// tier-independent; redaction happens per request after the cache.
type ViewCache interface {
	Get(ctx context.Context, companyID uint) ([]byte, bool)
	Set(ctx context.Context, companyID uint, payload []byte)
}

type CompanyHandler struct {
	getViewUC *usecases.GetCompanyViewUseCase
	searchUC  *usecases.SearchCompaniesUseCase
	resolver  *entitlement.Resolver
	viewCache ViewCache
	logger    logger.Interface
}

func NewCompanyHandler(
	getViewUC *usecases.GetCompanyViewUseCase,
	searchUC *usecases.SearchCompaniesUseCase,
	resolver *entitlement.Resolver,
	viewCache ViewCache,
) *CompanyHandler {
	return &CompanyHandler{
		getViewUC: getViewUC,
		searchUC:  searchUC,
		resolver:  resolver,
		viewCache: viewCache,
		logger:    logger.NewLogger(),
	}
}

// GetCompany returns the composed company view, redacted to the
// caller's tier.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || companyID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid company id")
		return
	}

	view, err := h.loadView(c, uint(companyID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub := middleware.SubscriberFromContext(c)
	redacted := h.redactView(c, *view, sub)

	utils.SuccessResponse(c, http.StatusOK, "company retrieved successfully", redacted)
}

// Search lists companies matching the query, charging one search
// against the caller's monthly allowance.
func (h *CompanyHandler) Search(c *gin.Context) {
	sub := middleware.SubscriberFromContext(c)
	if !h.resolver.HasSearchesRemaining(c.Request.Context(), sub) {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "monthly search limit reached, upgrade your plan for more searches")
		return
	}

	minRating, _ := strconv.ParseFloat(c.Query("min_rating"), 64)
	pagination := utils.ParsePagination(c)

	query := usecases.SearchCompaniesQuery{
		Query:        c.Query("q"),
		StateCode:    c.Query("state"),
		IndustrySlug: c.Query("industry"),
		MinRating:    minRating,
		VerifiedOnly: c.Query("verified") == "true",
		SortBy:       c.Query("sort"),
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	}

	result, err := h.searchUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.resolver.RecordSearch(c.Request.Context(), sub); err != nil {
		h.logger.Warnw("failed to record search usage", "error", err)
	}

	companies := h.redactSummaries(c, result.Companies, sub)
	utils.ListSuccessResponse(c, companies, result.Total, result.Page, result.PageSize)
}

// loadView serves from the cache when possible; misses assemble the
// view and repopulate it.
func (h *CompanyHandler) loadView(c *gin.Context, companyID uint) (*dto.CompanyView, error) {
	ctx := c.Request.Context()

	if h.viewCache != nil {
		if payload, ok := h.viewCache.Get(ctx, companyID); ok {
			var cached dto.CompanyView
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			h.logger.Warnw("discarding undecodable cached view", "company_id", companyID)
		}
	}

	view, err := h.getViewUC.Execute(ctx, usecases.GetCompanyViewQuery{CompanyID: companyID})
	if err != nil {
		return nil, err
	}

	if h.viewCache != nil {
		if payload, err := json.Marshal(view); err == nil {
			h.viewCache.Set(ctx, companyID, payload)
		}
	}
	return view, nil
}

func (h *CompanyHandler) redactView(c *gin.Context, view dto.CompanyView, sub *subscriber.Subscriber) dto.CompanyView {
	ctx := c.Request.Context()
	limits := h.resolver.LimitsFor(ctx, sub)

	canUnlock := h.resolver.CanUnlockPrices(ctx, sub)
	if !canUnlock {
		limits.PriceUnlocks = 0
	}

	redacted := view.Redact(limits)

	// a finite allowance is only consumed when pricing was actually shown
	if canUnlock && redacted.Pricing != nil && limits.PriceUnlocks > 0 {
		if err := h.resolver.RecordPriceUnlock(ctx, sub); err != nil {
			h.logger.Warnw("failed to record price unlock", "company_id", view.ID, "error", err)
		}
	}
	return redacted
}

func (h *CompanyHandler) redactSummaries(c *gin.Context, summaries []dto.CompanySummary, sub *subscriber.Subscriber) []dto.CompanySummary {
	priceUnlocks := 0
	if h.resolver.CanUnlockPrices(c.Request.Context(), sub) {
		priceUnlocks = h.resolver.LimitsFor(c.Request.Context(), sub).PriceUnlocks
	}

	redacted := make([]dto.CompanySummary, len(summaries))
	for i, summary := range summaries {
		redacted[i] = dto.RedactSummary(summary, priceUnlocks)
	}
	return redacted
}
