package app

import (
	"bitwise74/shop-api/internal/store"
	"errors"
	"fmt"
)

// MakeAdmin gives the user with email admin rights. There is no endpoint
// for this, the first admin has to be made from the command line
func MakeAdmin(s *store.Store, email string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no user registered with email %s", email)
		}
		return fmt.Errorf("failed to look up user, %w", err)
	}

	admin := true
	if _, err := s.Users.Update(u.ID, store.UserUpdate{IsAdmin: &admin}); err != nil {
		return fmt.Errorf("failed to promote user, %w", err)
	}

	return nil
}
