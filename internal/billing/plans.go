package billing

import (
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/user"
)

// Plan is a purchasable subscription tier.
type Plan struct {
	Tier     user.Tier `json:"tier"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	PriceID  string    `json:"-"`
	Features []string  `json:"features"`
}

// Plans returns the purchasable plans with their provider price refs
// filled in from config. The free tier is not listed; it is the default.
func Plans(cfg config.StripeConfig) map[user.Tier]Plan {
	return map[user.Tier]Plan{
		user.TierPro: {
			Tier:    user.TierPro,
			Name:    "Pro",
			Price:   9,
			PriceID: cfg.ProPriceID,
			Features: []string{
				"5 programs",
				"25 projects",
				"Unlimited tasks",
				"25 contacts",
				"Materials tracking",
				"Milestones",
				"Priority support",
			},
		},
		user.TierBusiness: {
			Tier:    user.TierBusiness,
			Name:    "Business",
			Price:   29,
			PriceID: cfg.BusinessPriceID,
			Features: []string{
				"Unlimited programs",
				"Unlimited projects",
				"Unlimited tasks",
				"Unlimited contacts",
				"All Pro features",
				"Advanced reporting (coming soon)",
				"API access (coming soon)",
				"Premium support",
			},
		},
	}
}
