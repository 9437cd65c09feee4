package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func seqIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mapStore is an in-memory KVStore that can be told to fail writes.
type mapStore struct {
	data     map[string]string
	failSets bool
	sets     int
}

func newMapStore() *mapStore { return &mapStore{data: map[string]string{}} }

func (m *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStore) Set(_ context.Context, key, value string) error {
	m.sets++
	if m.failSets {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func newTestPOS(t *testing.T, store KVStore, mutate ...func(*Options)) *POS {
	t.Helper()
	opts := Options{
		Store:    store,
		IDs:      seqIDs("id"),
		Clock:    func() time.Time { return fixedNow },
		Location: time.UTC,
	}
	for _, m := range mutate {
		m(&opts)
	}
	p, err := NewPOS(context.Background(), opts)
	require.NoError(t, err)
	return p
}

func mustProduct(t *testing.T, p *POS, name, price, unit, category string) domain.Product {
	t.Helper()
	out, err := p.AddProduct(context.Background(), AddProductInput{Name: name, Price: domain.NumberText(price), Unit: unit, Category: category})
	require.NoError(t, err)
	return out.Value
}
