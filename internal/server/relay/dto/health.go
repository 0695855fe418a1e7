package dto

type HealthResponse struct {
	Status          string `json:"status" example:"ok"`
	ChatBackend     string `json:"chat_backend" example:"log"`
	BroadcastPolicy string `json:"broadcast_policy" example:"exact"`
	Rooms           int    `json:"rooms" example:"2"`
	Journal         bool   `json:"journal"`
}
