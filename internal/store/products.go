package store

import (
	"bitwise74/shop-api/internal/model"
	"strings"

	"github.com/shopspring/decimal"
)

type Products struct {
	c *collection[model.Product]
}

// ProductFilter narrows down a product listing. Zero values disable a filter,
// set filters are combined with AND
type ProductFilter struct {
	Category string
	Search   string // Case insensitive substring of name or description
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f *ProductFilter) match(p *model.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}

	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}

	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}

	return true
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Image       *string
	Images      *[]string
	Stock       *int
	Rating      *float64
	Reviews     *int
}

func (u *ProductUpdate) apply(p *model.Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Images != nil {
		p.Images = *u.Images
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Rating != nil {
		r := *u.Rating
		p.Rating = &r
	}
	if u.Reviews != nil {
		r := *u.Reviews
		p.Reviews = &r
	}
}

// List returns the products matching f in storage order. A nil filter
// returns everything
func (s *Products) List(f *ProductFilter) ([]model.Product, error) {
	products, err := s.c.all()
	if err != nil {
		return nil, err
	}

	if f == nil {
		return products, nil
	}

	matched := make([]model.Product, 0, len(products))
	for i := range products {
		if f.match(&products[i]) {
			matched = append(matched, products[i])
		}
	}

	return matched, nil
}

func (s *Products) Get(id string) (*model.Product, error) {
	return s.c.get(id)
}

func (s *Products) Create(p *model.Product) (*model.Product, error) {
	if err := s.c.insert(*p, nil); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Products) Update(id string, upd ProductUpdate) (*model.Product, error) {
	return s.c.modify(id, func(r *model.Product) error {
		upd.apply(r)
		return nil
	})
}

// Delete removes a product and reports whether it existed
func (s *Products) Delete(id string) (bool, error) {
	return s.c.remove(id)
}
