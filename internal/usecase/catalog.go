package usecase

import (
	"fmt"
	"strings"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

type AddProductInput struct {
	Name     string            `json:"name"`
	Price    domain.NumberText `json:"price"`
	Unit     string            `json:"unit"`
	Category string            `json:"category"`
}

// ProductPatch replaces only the fields that are set.
type ProductPatch struct {
	Name     *string            `json:"name"`
	Price    *domain.NumberText `json:"price"`
	Unit     *string            `json:"unit"`
	Category *string            `json:"category"`
}

type ProductFilter struct {
	Category string
	Term     string
}

func (s *State) AddProduct(id string, in AddProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" || strings.TrimSpace(in.Price.String()) == "" {
		return domain.Product{}, fmt.Errorf("%w: enter name, price, and unit", domain.ErrValidation)
	}
	price, err := domain.ParsePrice(in.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: price must be a positive number", domain.ErrValidation)
	}
	p := domain.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Unit:     unit,
		Category: strings.TrimSpace(in.Category),
	}
	s.Products = append(s.Products, p)
	return p, nil
}

// UpdateProduct validates the whole patch before touching the product.
func (s *State) UpdateProduct(id string, patch ProductPatch) (domain.Product, error) {
	idx := s.productIndex(id)
	if idx < 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	p := s.Products[idx]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Product{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		}
		p.Name = name
	}
	if patch.Price != nil {
		price, err := domain.ParsePrice(patch.Price.String())
		if err != nil {
			return domain.Product{}, fmt.Errorf("%w: price must be a positive number", domain.ErrValidation)
		}
		p.Price = price
	}
	if patch.Unit != nil {
		unit := strings.TrimSpace(*patch.Unit)
		if unit == "" {
			return domain.Product{}, fmt.Errorf("%w: unit is required", domain.ErrValidation)
		}
		p.Unit = unit
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	s.Products[idx] = p
	return p, nil
}

func (s *State) DeleteProduct(id string) bool {
	idx := s.productIndex(id)
	if idx < 0 {
		return false
	}
	s.Products = append(s.Products[:idx:idx], s.Products[idx+1:]...)
	return true
}

func (s *State) FindProduct(id string) (domain.Product, bool) {
	idx := s.productIndex(id)
	if idx < 0 {
		return domain.Product{}, false
	}
	return s.Products[idx], true
}

func (s *State) ListProducts(f ProductFilter) []domain.Product {
	out := make([]domain.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if p.InCategory(f.Category) && p.NameContains(f.Term) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists "All" and then each category in the order it first appears.
func (s *State) Categories() []string {
	out := []string{domain.AllCategories}
	seen := map[string]bool{}
	for _, p := range s.Products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// ResetInventory empties the catalog and the sale cart.
func (s *State) ResetInventory() {
	s.Products = nil
	s.Cart = nil
}

func (s *State) productIndex(id string) int {
	for i, p := range s.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
