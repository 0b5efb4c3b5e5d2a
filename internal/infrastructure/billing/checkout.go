package billing

import (
	"context"
	"fmt"
	"net/url"

	sharedConfig "github.com/bizcompare/bizcompare/internal/shared/config"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// CheckoutRequest describes the session to open with the provider.
type CheckoutRequest struct {
	PriceID      string
	AuthID       string
	Email        string
	CustomerID   string
	BillingCycle string
}

// CheckoutClient opens hosted checkout sessions.
type CheckoutClient interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (string, error)
}

// HostedCheckoutClient builds redirect URLs for the provider's hosted
// checkout page. The provider completes the purchase and reports back via
// webhook; this service never touches card data.
type HostedCheckoutClient struct {
	cfg    *sharedConfig.BillingConfig
	logger logger.Interface
}

func NewHostedCheckoutClient(cfg *sharedConfig.BillingConfig, logger logger.Interface) CheckoutClient {
	return &HostedCheckoutClient{cfg: cfg, logger: logger}
}

func (c *HostedCheckoutClient) CreateSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if req.PriceID == "" {
		return "", fmt.Errorf("price id is required")
	}
	if req.AuthID == "" {
		return "", fmt.Errorf("auth id is required")
	}

	values := url.Values{}
	values.Set("price", req.PriceID)
	values.Set("client_reference_id", req.AuthID)
	values.Set("success_url", c.cfg.SuccessURL)
	values.Set("cancel_url", c.cfg.CancelURL)
	if req.Email != "" {
		values.Set("prefilled_email", req.Email)
	}
	if req.CustomerID != "" {
		values.Set("customer", req.CustomerID)
	}

	session := "https://checkout.bizcompare-billing.example/session?" + values.Encode()

	c.logger.Infow("checkout session created",
		"price_id", req.PriceID,
		"auth_id", req.AuthID,
	)
	return session, nil
}
