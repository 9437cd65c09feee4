package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

// Store keys, one per top-level collection.
const (
	KeyProducts      = "products"
	KeyCart          = "cart"
	KeyPreOrderCart  = "preOrderCart"
	KeyOrders        = "completedOrders"
	KeyPreOrders     = "preOrders"
	KeyCustomerCount = "customerCount"

	// written by the first release, read once if KeyProducts is absent
	keyLegacyProducts = "fruits"
)

var AllKeys = []string{KeyProducts, KeyCart, KeyPreOrderCart, KeyOrders, KeyPreOrders, KeyCustomerCount}

// legacy locale formats produced by Date.toLocaleString in the first release
var legacyDateLayouts = []string{
	"1/2/2006, 3:04:05 PM",
	"2/1/2006, 15:04:05",
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
}

// LoadState restores every collection. Absent keys leave the defaults in
// place; undecodable values are an error so a bad store is never overwritten.
// Collections that needed new ids or came from a legacy key are listed by
// Upgraded so the caller can write them back once.
func LoadState(ctx context.Context, store KVStore, ids IDGenerator, loc *time.Location) (*State, error) {
	st := NewState()

	minted := 0
	gen := func() string {
		minted++
		return ids()
	}
	mark := func(key string, before int, force bool) {
		if force || minted > before {
			st.upgraded = append(st.upgraded, key)
		}
	}

	legacy := false
	raw, ok, err := store.Get(ctx, KeyProducts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyProducts, err)
	}
	if !ok {
		raw, ok, err = store.Get(ctx, keyLegacyProducts)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", keyLegacyProducts, err)
		}
		legacy = ok
	}
	if ok {
		before := minted
		if st.Products, err = decodeProducts(raw, gen); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyProducts, err)
		}
		mark(KeyProducts, before, legacy)
	}

	if raw, ok, err = store.Get(ctx, KeyCart); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyCart, err)
	} else if ok {
		before := minted
		if st.Cart, err = decodeLines(raw, gen); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyCart, err)
		}
		mark(KeyCart, before, false)
	}

	if raw, ok, err = store.Get(ctx, KeyOrders); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyOrders, err)
	} else if ok {
		before := minted
		if st.Orders, err = decodeOrders(raw, gen, loc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyOrders, err)
		}
		mark(KeyOrders, before, false)
	}

	if err := loadJSON(ctx, store, KeyPreOrderCart, &st.PreOrderCart); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, store, KeyPreOrders, &st.PreOrders); err != nil {
		return nil, err
	}

	if raw, ok, err = store.Get(ctx, KeyCustomerCount); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyCustomerCount, err)
	} else if ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("decode %s: bad counter %q", KeyCustomerCount, raw)
		}
		st.CustomerCount = n
	}
	return st, nil
}

// Upgraded lists the keys LoadState rewrote in memory.
func (st *State) Upgraded() []string { return st.upgraded }

// EncodeKey serialises the collection stored under key.
func EncodeKey(st *State, key string) (string, error) {
	var v any
	switch key {
	case KeyProducts:
		v = nonNil(st.Products)
	case KeyCart:
		v = nonNil(st.Cart)
	case KeyPreOrderCart:
		v = nonNil(st.PreOrderCart)
	case KeyOrders:
		v = nonNil(st.Orders)
	case KeyPreOrders:
		v = nonNil(st.PreOrders)
	case KeyCustomerCount:
		return strconv.Itoa(st.CustomerCount), nil
	default:
		return "", fmt.Errorf("unknown key %q", key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func loadJSON(ctx context.Context, store KVStore, key string, dst any) error {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// legacyProduct accepts the first release's id-less records and later
// numeric ids.
type legacyProduct struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Category string          `json:"category"`
}

func decodeProducts(raw string, ids IDGenerator) ([]domain.Product, error) {
	var in []legacyProduct
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Product{
			ID:       idOrNew(p.ID, ids),
			Name:     p.Name,
			Price:    p.Price,
			Unit:     p.Unit,
			Category: p.Category,
		})
	}
	return out, nil
}

// legacyLine covers cart lines that carried "weight" instead of "quantity".
type legacyLine struct {
	ID        json.RawMessage  `json:"id"`
	ProductID json.RawMessage  `json:"productId"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Weight    *decimal.Decimal `json:"weight"`
	Unit      string           `json:"unit"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
}

func (l legacyLine) upgrade(ids IDGenerator) domain.CartLine {
	qty := decimal.Zero
	switch {
	case l.Quantity != nil:
		qty = *l.Quantity
	case l.Weight != nil:
		qty = *l.Weight
	}
	return domain.CartLine{
		ID:        idOrNew(l.ID, ids),
		ProductID: rawID(l.ProductID),
		Name:      l.Name,
		Price:     l.Price,
		Quantity:  qty,
		Unit:      l.Unit,
		Subtotal:  l.Subtotal,
	}
}

func decodeLines(raw string, ids IDGenerator) ([]domain.CartLine, error) {
	var in []legacyLine
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	out := make([]domain.CartLine, 0, len(in))
	for _, l := range in {
		out = append(out, l.upgrade(ids))
	}
	return out, nil
}

type legacyOrder struct {
	SchemaVersion int             `json:"schemaVersion"`
	ID            json.RawMessage `json:"id"`
	Customer      string          `json:"customer"`
	Address       string          `json:"address"`
	Status        string          `json:"status"`
	Items         []legacyLine    `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Date          string          `json:"date"`
	RawDate       string          `json:"rawDate"`
	DisplayDate   string          `json:"displayDate"`
	Time          string          `json:"time"`
}

func decodeOrders(raw string, ids IDGenerator, loc *time.Location) ([]domain.Order, error) {
	var in []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(in))
	for i, msg := range in {
		var head struct {
			SchemaVersion int `json:"schemaVersion"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		if head.SchemaVersion >= domain.OrderSchemaVersion {
			var o domain.Order
			if err := json.Unmarshal(msg, &o); err != nil {
				return nil, fmt.Errorf("order %d: %w", i, err)
			}
			out = append(out, o)
			continue
		}
		var lo legacyOrder
		if err := json.Unmarshal(msg, &lo); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		out = append(out, upgradeOrder(lo, ids, loc))
	}
	return out, nil
}

func upgradeOrder(lo legacyOrder, ids IDGenerator, loc *time.Location) domain.Order {
	o := domain.Order{
		SchemaVersion: domain.OrderSchemaVersion,
		ID:            idOrNew(lo.ID, ids),
		Customer:      lo.Customer,
		Address:       lo.Address,
		Status:        domain.StatusPending,
		Total:         lo.Total,
		RawDate:       lo.RawDate,
		DisplayDate:   lo.DisplayDate,
		Time:          lo.Time,
	}
	if o.Address == "" {
		o.Address = DefaultWalkInLabel
	}
	if st, ok := domain.ParseStatus(lo.Status); ok {
		o.Status = st
	}
	for _, l := range lo.Items {
		o.Items = append(o.Items, l.upgrade(ids))
	}
	if t, ok := parseLegacyDate(lo.Date, loc); ok {
		o.CreatedAt = t
		if o.RawDate == "" {
			o.RawDate = t.Format(RawDateLayout)
		}
		if o.DisplayDate == "" {
			o.DisplayDate = t.Format(DisplayDateLayout)
		}
		if o.Time == "" {
			o.Time = t.Format(TimeLayout)
		}
	} else if o.DisplayDate == "" {
		o.DisplayDate = lo.Date
	}
	return o
}

func parseLegacyDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range legacyDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func idOrNew(raw json.RawMessage, ids IDGenerator) string {
	if id := rawID(raw); id != "" {
		return id
	}
	return ids()
}
