package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

const (
	UnitPolicyPerUnit      = "per_unit"
	UnitPolicyGramsPerKilo = "grams_per_kilo"
)

// UnitPolicy maps the quantity typed at the counter to the quantity the
// product price is multiplied by.
type UnitPolicy interface {
	Name() string
	BillableQuantity(unit string, qty decimal.Decimal) decimal.Decimal
}

// PerUnit treats every price as already per the stated unit.
type PerUnit struct{}

func (PerUnit) Name() string { return UnitPolicyPerUnit }

func (PerUnit) BillableQuantity(_ string, qty decimal.Decimal) decimal.Decimal { return qty }

// GramsPerKilo reads "g" products as priced per kilogram, so 250 g bills 0.25.
type GramsPerKilo struct{}

var thousand = decimal.NewFromInt(1000)

func (GramsPerKilo) Name() string { return UnitPolicyGramsPerKilo }

func (GramsPerKilo) BillableQuantity(unit string, qty decimal.Decimal) decimal.Decimal {
	if unit == domain.UnitGram {
		return qty.Div(thousand)
	}
	return qty
}

func UnitPolicyByName(name string) (UnitPolicy, error) {
	switch name {
	case "", UnitPolicyPerUnit:
		return PerUnit{}, nil
	case UnitPolicyGramsPerKilo:
		return GramsPerKilo{}, nil
	}
	return nil, fmt.Errorf("unknown unit policy %q", name)
}
