package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Units offered by the inventory form. Any other non-empty unit is accepted.
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitPiece    = "pcs"
	UnitBundle   = "tali"
)

// AllCategories is the synthetic category that matches every product.
const AllCategories = "All"

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Category string          `json:"category"`
}

// NumberText is a numeric form field that may arrive as a JSON string or a
// JSON number. The text is kept as sent so ParsePrice decides what is valid.
type NumberText string

func (n *NumberText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumberText(num.String())
	return nil
}

func (n NumberText) String() string { return string(n) }

// ParsePrice accepts only a positive decimal.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrValidation
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrValidation
	}
	return d, nil
}

func ParseQuantity(raw string) (decimal.Decimal, error) {
	return ParsePrice(raw)
}

func (p Product) InCategory(category string) bool {
	return category == "" || category == AllCategories || p.Category == category
}

func (p Product) NameContains(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}
