package store

import (
	"bitwise74/shop-api/internal/model"
	"errors"
)

var ErrIllegalTransition = errors.New("illegal order status transition")

type Orders struct {
	c *collection[model.Order]
}

type OrderUpdate struct {
	Status *model.OrderStatus
}

func (u *OrderUpdate) apply(o *model.Order) {
	if u.Status != nil {
		o.Status = *u.Status
	}
}

// List returns every order, or only the ones owned by userID if it's set
func (s *Orders) List(userID string) ([]model.Order, error) {
	orders, err := s.c.all()
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return orders, nil
	}

	owned := make([]model.Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			owned = append(owned, o)
		}
	}

	return owned, nil
}

func (s *Orders) Get(id string) (*model.Order, error) {
	return s.c.get(id)
}

func (s *Orders) Create(o *model.Order) (*model.Order, error) {
	if err := s.c.insert(*o, nil); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Orders) Update(id string, upd OrderUpdate) (*model.Order, error) {
	return s.c.modify(id, func(r *model.Order) error {
		upd.apply(r)
		return nil
	})
}

// SetStatus moves an order to status if the transition is allowed from the
// status currently stored. The check and the write happen under one lock
func (s *Orders) SetStatus(id string, status model.OrderStatus) (*model.Order, error) {
	return s.c.modify(id, func(o *model.Order) error {
		if !o.Status.CanTransition(status) {
			return ErrIllegalTransition
		}

		o.Status = status
		return nil
	})
}
