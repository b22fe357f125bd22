package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Bag.
const (
	BagStatusActive   = "active"
	BagStatusSoldOut  = "sold_out"
	BagStatusArchived = "archived"
)

// ValidBagStatus indica si s es un estado reconocido.
func ValidBagStatus(s string) bool {
	switch s {
	case BagStatusActive, BagStatusSoldOut, BagStatusArchived:
		return true
	}
	return false
}

// Bag es una bolsa sorpresa de comida excedente publicada por un partner.
// Address/Lat/Lng son overrides opcionales; si faltan, el frontend usa la
// ubicación del partner. Quantity nunca es negativa.
type Bag struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Quantity     int
	PickupTime   *time.Time
	Status       string
	PartnerID    int64
	Address      string
	Lat          *float64
	Lng          *float64
	ThumbnailURL string
	CreatedAt    time.Time // inmutable después de crear
}
