// Package order contains the checkout and order tracking endpoints
package order

import "bitwise74/shop-api/internal/model"

type itemBody struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=1000"`
}

type shippingBody struct {
	FullName   string `json:"fullName" binding:"required,min=2,max=100"`
	Address    string `json:"address" binding:"required,min=5,max=200"`
	City       string `json:"city" binding:"required,min=2,max=100"`
	PostalCode string `json:"postalCode" binding:"required,min=3,max=20"`
	Country    string `json:"country" binding:"required,min=2,max=100"`
	Phone      string `json:"phone" binding:"required,min=10,max=30"`
}

func (s shippingBody) toModel() model.ShippingAddress {
	return model.ShippingAddress{
		FullName:   s.FullName,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
		Country:    s.Country,
		Phone:      s.Phone,
	}
}

// Items only carry product IDs and quantities. Name, price and image are
// copied from the catalog at checkout so clients can't set their own prices
type createBody struct {
	Items           []itemBody   `json:"items" binding:"dive"`
	ShippingAddress shippingBody `json:"shippingAddress"`
	PaymentMethod   string       `json:"paymentMethod" binding:"required,oneof=credit_card debit_card paypal cash_on_delivery"`
}

type statusBody struct {
	Status model.OrderStatus `json:"status"`
}
