// Package model contains the marketplace entities and their mutation rules.
package model

// Tier is a customer loyalty classification derived from net spend.
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Loyalty evaluation thresholds and the per-cancellation spend penalty.
const (
	cancellationPenalty = 250
	silverThreshold     = 500
	goldThreshold       = 2000
	platinumThreshold   = 5000
)

// Customer tracks loyalty and spending for one registered customer.
// Customers are never removed once created.
type Customer struct {
	ID                   string
	TotalAmountSpent     float64
	TotalLoyaltyBase     float64
	CancellationCount    int
	TotalEmploymentCount int
	LoyaltyTier          Tier
}

// NewCustomer creates a customer starting at the bronze tier.
func NewCustomer(id string) *Customer {
	return &Customer{ID: id, LoyaltyTier: TierBronze}
}

// UpdateLoyaltyTier re-derives the tier from net spending. Tiers are only
// re-derived at month boundaries, never on individual payments.
func (c *Customer) UpdateLoyaltyTier() {
	eval := c.TotalAmountSpent - float64(c.CancellationCount*cancellationPenalty)
	switch {
	case eval >= platinumThreshold:
		c.LoyaltyTier = TierPlatinum
	case eval >= goldThreshold:
		c.LoyaltyTier = TierGold
	case eval >= silverThreshold:
		c.LoyaltyTier = TierSilver
	default:
		c.LoyaltyTier = TierBronze
	}
}

// Discount returns the payment multiplier granted by the current tier.
func (c *Customer) Discount() float64 {
	switch c.LoyaltyTier {
	case TierPlatinum:
		return 0.85
	case TierGold:
		return 0.90
	case TierSilver:
		return 0.95
	default:
		return 1.0
	}
}
