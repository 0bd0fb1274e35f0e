package transport

import "github.com/Skotchmaster/inventory/services/inventory/internal/models"

type CreateItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PatchItemRequest struct {
	Name     *string  `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

type SearchResponse struct {
	Total int64         `json:"total"`
	Items []models.Item `json:"items"`
}
