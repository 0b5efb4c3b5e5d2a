// Package billing integrates the payment provider: webhook verification,
// event decoding, and checkout session creation.
package billing

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies a webhook event.
type EventType string

const (
	EventCheckoutCompleted     EventType = "checkout.session.completed"
	EventSubscriptionUpdated   EventType = "customer.subscription.updated"
	EventSubscriptionDeleted   EventType = "customer.subscription.deleted"
	EventInvoicePaymentSuccess EventType = "invoice.payment_succeeded"
	EventInvoicePaymentFailed  EventType = "invoice.payment_failed"
)

// Event is the decoded webhook payload. Only the fields this service acts
// on are mapped; everything else in the provider payload is ignored.
type Event struct {
	ID             string     `json:"id"`
	Type           EventType  `json:"type"`
	CustomerID     string     `json:"customer_id"`
	SubscriptionID string     `json:"subscription_id"`
	PriceID        string     `json:"price_id"`
	Status         string     `json:"status"`
	PeriodEnd      *time.Time `json:"period_end,omitempty"`
	ClientAuthID   string     `json:"client_auth_id,omitempty"`
	CustomerEmail  string     `json:"customer_email,omitempty"`
}

// ParseEvent decodes a verified webhook body.
func ParseEvent(body []byte) (*Event, error) {
	var raw struct {
		ID   string    `json:"id"`
		Type EventType `json:"type"`
		Data struct {
			Object struct {
				ID       string `json:"id"`
				Customer string `json:"customer"`
				Status   string `json:"status"`
				Metadata struct {
					AuthID string `json:"auth_id"`
				} `json:"metadata"`
				CustomerEmail    string `json:"customer_email"`
				Subscription     string `json:"subscription"`
				CurrentPeriodEnd int64  `json:"current_period_end"`
				Items            struct {
					Data []struct {
						Price struct {
							ID string `json:"id"`
						} `json:"price"`
					} `json:"data"`
				} `json:"items"`
			} `json:"object"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if raw.Type == "" {
		return nil, fmt.Errorf("event has no type")
	}

	event := &Event{
		ID:            raw.ID,
		Type:          raw.Type,
		CustomerID:    raw.Data.Object.Customer,
		Status:        raw.Data.Object.Status,
		ClientAuthID:  raw.Data.Object.Metadata.AuthID,
		CustomerEmail: raw.Data.Object.CustomerEmail,
	}

	// checkout sessions reference the subscription by id; subscription
	// events are the subscription object itself.
	switch raw.Type {
	case EventCheckoutCompleted, EventInvoicePaymentSuccess, EventInvoicePaymentFailed:
		event.SubscriptionID = raw.Data.Object.Subscription
	default:
		event.SubscriptionID = raw.Data.Object.ID
	}

	if len(raw.Data.Object.Items.Data) > 0 {
		event.PriceID = raw.Data.Object.Items.Data[0].Price.ID
	}
	if raw.Data.Object.CurrentPeriodEnd > 0 {
		t := time.Unix(raw.Data.Object.CurrentPeriodEnd, 0).UTC()
		event.PeriodEnd = &t
	}

	return event, nil
}
