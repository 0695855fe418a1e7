package dto

import "github.com/Alwanly/sensu-relay/internal/models"

// ListDeliveriesRequest holds the query of GET /deliveries.
type ListDeliveriesRequest struct {
	Room  string `query:"room" validate:"omitempty,max=256"`
	Limit int    `query:"limit" validate:"gte=0,lte=500"`
}

type ListDeliveriesResponse struct {
	Deliveries []models.Delivery `json:"deliveries"`
	Count      int               `json:"count"`
}
