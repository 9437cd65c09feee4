package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusDelivered Status = "Delivered"
)

// OrderSchemaVersion is stamped on every order written by this version.
// Records without it predate ids, statuses and addresses.
const OrderSchemaVersion = 1

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusDelivered:
		return Status(s), true
	}
	return "", false
}

// Toggled flips Pending and Delivered.
func (s Status) Toggled() Status {
	if s == StatusDelivered {
		return StatusPending
	}
	return StatusDelivered
}

type Order struct {
	SchemaVersion int             `json:"schemaVersion"`
	ID            string          `json:"id"`
	Customer      string          `json:"customer"`
	Address       string          `json:"address"`
	Status        Status          `json:"status"`
	Items         []CartLine      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	RawDate       string          `json:"rawDate"`
	DisplayDate   string          `json:"displayDate"`
	Time          string          `json:"time"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Clone returns a copy that shares no item storage with o.
func (o Order) Clone() Order {
	o.Items = CloneLines(o.Items)
	return o
}

