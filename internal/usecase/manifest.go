package usecase

import (
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

// lowestPriority is given to addresses outside the numbered phases.
const lowestPriority = 5

// Farthest phase goes out first.
var phasePriority = map[byte]int{'4': 1, '3': 2, '2': 3, '1': 4}

type ManifestRow struct {
	Order    domain.Order `json:"order"`
	Label    string       `json:"label"`
	Priority int          `json:"priority"`
}

// AddressPriority ranks an address by its phase digit. A leading "Phase"
// word is skipped, so "Phase4 blk2" and "4 blk2" rank the same.
func AddressPriority(address string) int {
	a := strings.TrimSpace(address)
	if len(a) >= 5 && strings.EqualFold(a[:5], "phase") {
		a = strings.TrimLeftFunc(a[5:], unicode.IsSpace)
	}
	if a == "" {
		return lowestPriority
	}
	if p, ok := phasePriority[a[0]]; ok {
		return p
	}
	return lowestPriority
}

// ManifestLabel prefixes bare phase addresses with "Phase".
func ManifestLabel(address string) string {
	if address != "" {
		if _, ok := phasePriority[address[0]]; ok {
			return "Phase " + address
		}
	}
	return address
}

func BuildManifest(orders []domain.Order) []ManifestRow {
	rows := make([]ManifestRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, ManifestRow{
			Order:    o.Clone(),
			Label:    ManifestLabel(o.Address),
			Priority: AddressPriority(o.Address),
		})
	}
	slices.SortStableFunc(rows, func(a, b ManifestRow) int { return a.Priority - b.Priority })
	return rows
}

func ManifestTotal(rows []ManifestRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Order.Total)
	}
	return total
}
