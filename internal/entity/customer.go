package entity

import "time"

// Customer tiers, derived solely from lifetime spend.
const (
	TierNovo    = "Novo"
	TierRegular = "Regular"
	TierPremium = "Premium"
	TierVIP     = "VIP"
)

// Tiers lists every tier in ascending spend order. Distribution reports
// iterate this slice so the order is stable.
var Tiers = []string{TierNovo, TierRegular, TierPremium, TierVIP}

// Customer types
const (
	CustomerTypePF = "PF" // pessoa física
	CustomerTypePJ = "PJ" // pessoa jurídica
)

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Document     string     `json:"document"` // CPF or CNPJ
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone"`
	WhatsApp     string     `json:"whatsapp,omitempty"`
	Address      Address    `json:"address"`
	Category     string     `json:"category"`
	TotalSpent   float64    `json:"totalSpent"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastPurchase *time.Time `json:"lastPurchase,omitempty"`
}

// ClassifyTier maps accumulated spend to a tier label. Pure and total:
// every float maps to exactly one tier.
func ClassifyTier(totalSpent float64) string {
	switch {
	case totalSpent >= 5000:
		return TierVIP
	case totalSpent >= 3000:
		return TierPremium
	case totalSpent >= 1000:
		return TierRegular
	default:
		return TierNovo
	}
}
