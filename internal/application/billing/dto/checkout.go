package dto

// CreateCheckoutCommand asks for a hosted checkout session for the
// calling subscriber.
type CreateCheckoutCommand struct {
	AuthID  string `json:"-"`
	PriceID string `json:"price_id" validate:"required"`
}

// CreateCheckoutResult carries the redirect URL for the hosted page.
type CreateCheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
}
