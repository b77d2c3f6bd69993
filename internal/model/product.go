package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Keep prices as plain JSON numbers in the data files and responses
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Images      []string        `json:"images,omitempty"`
	Stock       int             `json:"stock"`
	Rating      *float64        `json:"rating,omitempty"`
	Reviews     *int            `json:"reviews,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
