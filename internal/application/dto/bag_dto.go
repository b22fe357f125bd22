package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBagRequest entrada para crear una bolsa. Status por defecto "active".
type CreateBagRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	PickupTime   *time.Time      `json:"pickup_time"`
	Status       string          `json:"status" validate:"omitempty,oneof=active sold_out archived"`
	Address      string          `json:"address"`
	Lat          *float64        `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng          *float64        `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	ThumbnailURL string          `json:"thumbnail_url"`
}

// UpdateBagRequest patch explícito: todo campo editable es opcional y
// ausente-vs-presente se distingue por el puntero. No incluye partner_id
// (las bolsas no se reasignan entre partners).
type UpdateBagRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int             `json:"quantity" validate:"omitempty,min=0"`
	PickupTime   *time.Time       `json:"pickup_time"`
	Status       *string          `json:"status" validate:"omitempty,oneof=active sold_out archived"`
	Address      *string          `json:"address"`
	Lat          *float64         `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng          *float64         `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	ThumbnailURL *string          `json:"thumbnail_url"`
}

// BagResponse salida de una bolsa.
type BagResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	PickupTime   *time.Time      `json:"pickup_time"`
	Status       string          `json:"status"`
	PartnerID    int64           `json:"partner_id"`
	Address      string          `json:"address"`
	Lat          *float64        `json:"lat"`
	Lng          *float64        `json:"lng"`
	ThumbnailURL string          `json:"thumbnail_url"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BagListResponse lista paginada de bolsas.
type BagListResponse struct {
	Items []BagResponse `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Pages int           `json:"pages"`
}

// BagCountsResponse conteos por estado para el dashboard del partner.
type BagCountsResponse struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	SoldOut int `json:"sold_out"`
}

// ReserveResponse resultado de reservar una unidad.
type ReserveResponse struct {
	BagID     int64  `json:"bag_id"`
	Remaining int    `json:"remaining"`
	Status    string `json:"status"`
}
