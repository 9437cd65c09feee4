package usecase

import "time"

const (
	EventOrderCompleted     = "order.completed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// Published on the order events exchange.
type OrderEvent struct {
	Type     string    `json:"type"`
	OrderID  string    `json:"orderId"`
	Customer string    `json:"customer,omitempty"`
	Address  string    `json:"address,omitempty"`
	Status   string    `json:"status,omitempty"`
	Total    string    `json:"total,omitempty"`
	At       time.Time `json:"at"`
}

// Sent by the courier dispatch feed on Kafka
type DispatchStatusMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // "Delivered" | "Pending"
}
