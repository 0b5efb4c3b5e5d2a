package mappers

import (
	"github.com/bizcompare/bizcompare/internal/domain/subscriber"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/models"
)

// SubscriberMapper handles the conversion between domain entities and persistence models
type SubscriberMapper interface {
	ToEntity(model *models.SubscriberModel) *subscriber.Subscriber
	ToModel(entity *subscriber.Subscriber) *models.SubscriberModel
}

type subscriberMapper struct{}

// NewSubscriberMapper creates a new subscriber mapper
func NewSubscriberMapper() SubscriberMapper {
	return &subscriberMapper{}
}

func (m *subscriberMapper) ToEntity(model *models.SubscriberModel) *subscriber.Subscriber {
	if model == nil {
		return nil
	}

	return subscriber.ReconstructSubscriber(
		model.ID,
		model.AuthID, model.Email, model.Name,
		subscription.ParseTier(model.Tier),
		subscriber.Status(model.Status),
		model.BillingCustomerID, model.BillingSubscriptionID,
		model.CurrentPeriodEnd,
		model.SearchesThisMonth, model.PriceUnlocksThisMonth,
		model.LastUsageReset,
		model.CreatedAt, model.UpdatedAt,
	)
}

func (m *subscriberMapper) ToModel(entity *subscriber.Subscriber) *models.SubscriberModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriberModel{
		ID:                    entity.ID(),
		AuthID:                entity.AuthID(),
		Email:                 entity.Email(),
		Name:                  entity.Name(),
		Tier:                  entity.Tier().String(),
		Status:                string(entity.Status()),
		BillingCustomerID:     entity.BillingCustomerID(),
		BillingSubscriptionID: entity.BillingSubscriptionID(),
		CurrentPeriodEnd:      entity.CurrentPeriodEnd(),
		SearchesThisMonth:     entity.SearchesThisMonth(),
		PriceUnlocksThisMonth: entity.PriceUnlocksThisMonth(),
		LastUsageReset:        entity.LastUsageReset(),
		CreatedAt:             entity.CreatedAt(),
		UpdatedAt:             entity.UpdatedAt(),
	}
}
