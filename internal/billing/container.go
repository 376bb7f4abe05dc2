package billing

import (
	"github.com/stripe/stripe-go/v78/client"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/user"
)

type BillingContainer struct {
	Provider     Provider
	Service      BillingService
	Synchronizer *Synchronizer
	Handler      *Handler
}

func NewBillingContainer(cfg config.StripeConfig, userRepo user.UserRepository) *BillingContainer {
	api := client.New(cfg.SecretKey, nil)
	provider := NewStripeProvider(api)
	service := NewService(provider, userRepo, cfg)
	synchronizer := NewSynchronizer(userRepo)

	return &BillingContainer{
		Provider:     provider,
		Service:      service,
		Synchronizer: synchronizer,
		Handler:      NewHandler(service, synchronizer, cfg.WebhookSecret),
	}
}
