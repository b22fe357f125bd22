package dto

// PartnerSummary salida pública de un partner (para el banner del frontend).
type PartnerSummary struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	ThumbnailURL string   `json:"thumbnail_url"`
}
