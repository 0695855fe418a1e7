package models

import "time"

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// Delivery is one journaled chat send.
type Delivery struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	CorrelationID string    `gorm:"column:correlation_id;index" json:"correlation_id,omitempty"`
	Room          string    `gorm:"column:room;index" json:"room"`
	Kind          string    `gorm:"column:kind" json:"kind"`
	Text          string    `gorm:"column:text" json:"text"`
	Status        string    `gorm:"column:status" json:"status"`
	Error         string    `gorm:"column:error" json:"error,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}
