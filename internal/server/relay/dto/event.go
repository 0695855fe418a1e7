package dto

// Outcome of one webhook delivery.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeDeclined  Outcome = "declined"
	OutcomeMalformed Outcome = "malformed"
	OutcomeFailed    Outcome = "failed"
)

// EventResponse reports what happened to one webhook payload.
type EventResponse struct {
	Outcome     Outcome  `json:"outcome" example:"delivered"`
	Reason      string   `json:"reason,omitempty" example:"no broadcast configured"`
	Message     string   `json:"message,omitempty" example:"[sensu] NEW PROBLEM: host1 (dc1): disk - 95% full"`
	Rooms       []string `json:"rooms,omitempty"`
	FailedRooms []string `json:"failed_rooms,omitempty"`
}
