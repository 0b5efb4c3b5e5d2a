package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	billingUC "github.com/bizcompare/bizcompare/internal/application/billing/usecases"
	companyUC "github.com/bizcompare/bizcompare/internal/application/company/usecases"
	"github.com/bizcompare/bizcompare/internal/application/entitlement"
	subscriberUC "github.com/bizcompare/bizcompare/internal/application/subscriber/usecases"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/infrastructure/auth"
	"github.com/bizcompare/bizcompare/internal/infrastructure/billing"
	"github.com/bizcompare/bizcompare/internal/infrastructure/cache"
	"github.com/bizcompare/bizcompare/internal/infrastructure/config"
	"github.com/bizcompare/bizcompare/internal/infrastructure/email"
	"github.com/bizcompare/bizcompare/internal/infrastructure/ratelimit"
	"github.com/bizcompare/bizcompare/internal/infrastructure/repository"
	"github.com/bizcompare/bizcompare/internal/interfaces/http/handlers"
	"github.com/bizcompare/bizcompare/internal/interfaces/http/handlers/admin"
	"github.com/bizcompare/bizcompare/internal/interfaces/http/middleware"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/services/markdown"
)

const viewCacheTTL = 5 * time.Minute

// Router wires the HTTP surface: handlers, auth, and rate limits.
type Router struct {
	engine            *gin.Engine
	healthHandler     *handlers.HealthHandler
	companyHandler    *handlers.CompanyHandler
	planHandler       *handlers.PlanHandler
	subscriberHandler *handlers.SubscriberHandler
	billingHandler    *handlers.BillingHandler
	adminCompany      *admin.CompanyHandler
	authMiddleware    *middleware.AuthMiddleware
	rateLimiter       ratelimit.RateLimiter
	cfg               *config.Config
	logger            logger.Interface
}

// NewRouter builds the full dependency graph. The read handle serves
// directory lookups, the service handle takes subscriber and ingest
// writes.
func NewRouter(
	readDB, serviceDB *gorm.DB,
	redisClient *redis.Client,
	priceMap subscription.PriceMap,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	engine := gin.New()

	companyRepo := repository.NewCompanyRepository(readDB, serviceDB, log)
	facetRepo := repository.NewCompanyFacetRepository(readDB, log)
	subscriberRepo := repository.NewSubscriberRepository(serviceDB, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	notifier := email.NewSMTPNotifier(&cfg.Email, log)
	markdownService := markdown.NewService()
	viewCache := cache.NewCompanyViewCache(redisClient, viewCacheTTL, log)
	verifier := billing.NewVerifier(cfg.Billing.WebhookSecret, time.Duration(cfg.Billing.ToleranceSeconds)*time.Second)
	checkoutClient := billing.NewHostedCheckoutClient(&cfg.Billing, log)
	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient)

	facetTimeout := time.Duration(cfg.Aggregator.FacetTimeoutMS) * time.Millisecond

	resolver := entitlement.NewResolver(subscriberRepo, log)
	getViewUC := companyUC.NewGetCompanyViewUseCase(companyRepo, facetRepo, markdownService, log, facetTimeout)
	searchUC := companyUC.NewSearchCompaniesUseCase(companyRepo, facetRepo, log, facetTimeout)
	upsertUC := companyUC.NewUpsertCompanyUseCase(companyRepo, viewCache, log)
	getOrCreateUC := subscriberUC.NewGetOrCreateSubscriberUseCase(subscriberRepo, log)
	getProfileUC := subscriberUC.NewGetProfileUseCase(subscriberRepo, resolver, log)
	handleEventUC := billingUC.NewHandleBillingEventUseCase(subscriberRepo, priceMap, notifier, log)
	createCheckoutUC := billingUC.NewCreateCheckoutUseCase(subscriberRepo, priceMap, checkoutClient, log)

	return &Router{
		engine:            engine,
		healthHandler:     handlers.NewHealthHandler(readDB),
		companyHandler:    handlers.NewCompanyHandler(getViewUC, searchUC, resolver, viewCache),
		planHandler:       handlers.NewPlanHandler(),
		subscriberHandler: handlers.NewSubscriberHandler(getProfileUC),
		billingHandler:    handlers.NewBillingHandler(verifier, handleEventUC, createCheckoutUC),
		adminCompany:      admin.NewCompanyHandler(upsertUC),
		authMiddleware:    middleware.NewAuthMiddleware(jwtService, getOrCreateUC, log),
		rateLimiter:       rateLimiter,
		cfg:               cfg,
		logger:            log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.Check)

	v1 := r.engine.Group("/api/v1")

	companies := v1.Group("/companies")
	companies.Use(r.authMiddleware.OptionalAuth())
	{
		searchLimit := middleware.RateLimit(r.rateLimiter, "search", r.cfg.RateLimit.SearchPerMinute, r.logger)
		companies.GET("/search", searchLimit, r.companyHandler.Search)
		companies.GET("/:id", r.companyHandler.GetCompany)
	}

	plans := v1.Group("/plans")
	{
		plans.GET("/public", r.planHandler.GetPublicPlans)
	}

	subscribers := v1.Group("/subscribers")
	subscribers.Use(r.authMiddleware.RequireAuth())
	{
		subscribers.GET("/me", r.subscriberHandler.Me)
	}

	billingGroup := v1.Group("/billing")
	{
		webhookLimit := middleware.RateLimit(r.rateLimiter, "webhook", r.cfg.RateLimit.WebhookPerMinute, r.logger)
		billingGroup.POST("/webhook", webhookLimit, r.billingHandler.Webhook)
		billingGroup.POST("/checkout", r.authMiddleware.RequireAuth(), r.billingHandler.CreateCheckout)
	}

	adminGroup := v1.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireAdmin())
	{
		adminGroup.PUT("/companies", r.adminCompany.UpsertCompany)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
