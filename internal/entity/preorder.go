package domain

import "time"

type PreOrder struct {
	ID        string         `json:"id"`
	Customer  string         `json:"customer"`
	Items     []PreOrderLine `json:"items"`
	Date      string         `json:"date"`
	CreatedAt time.Time      `json:"createdAt"`
}
