// Package product contains the catalog endpoints
package product

import (
	"bitwise74/shop-api/internal/store"

	"github.com/shopspring/decimal"
)

type createBody struct {
	Name        string          `json:"name" binding:"required,min=3,max=200"`
	Description string          `json:"description" binding:"required,min=10"`
	Price       decimal.Decimal `json:"price" binding:"gt=0"`
	Category    string          `json:"category" binding:"required"`
	Image       string          `json:"image" binding:"required,url"`
	Images      []string        `json:"images" binding:"omitempty,dive,url"`
	Stock       *int            `json:"stock" binding:"required,min=0"`
	Rating      *float64        `json:"rating" binding:"omitempty,min=0,max=5"`
	Reviews     *int            `json:"reviews" binding:"omitempty,min=0"`
}

// Every field is optional, only the ones sent are changed
type updateBody struct {
	Name        *string          `json:"name" binding:"omitempty,min=3,max=200"`
	Description *string          `json:"description" binding:"omitempty,min=10"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,gt=0"`
	Category    *string          `json:"category" binding:"omitempty,min=1"`
	Image       *string          `json:"image" binding:"omitempty,url"`
	Images      *[]string        `json:"images" binding:"omitempty,dive,url"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Rating      *float64         `json:"rating" binding:"omitempty,min=0,max=5"`
	Reviews     *int             `json:"reviews" binding:"omitempty,min=0"`
}

func (b *updateBody) toUpdate() store.ProductUpdate {
	return store.ProductUpdate{
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		Category:    b.Category,
		Image:       b.Image,
		Images:      b.Images,
		Stock:       b.Stock,
		Rating:      b.Rating,
		Reviews:     b.Reviews,
	}
}
