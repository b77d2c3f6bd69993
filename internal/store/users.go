package store

import (
	"bitwise74/shop-api/internal/model"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidToken    = errors.New("token doesn't match or has expired")
	ErrAlreadyVerified = errors.New("user is already verified")
)

type Users struct {
	c *collection[model.User]
}

// UserUpdate lists the fields that can change after sign-up. Nil fields are
// left untouched. A pointer to an empty string or zero time clears the field
type UserUpdate struct {
	Password          *string
	Name              *string
	IsVerified        *bool
	VerificationToken *string
	ResetToken        *string
	ResetTokenExpiry  *time.Time
	IsAdmin           *bool
}

func (u *UserUpdate) apply(user *model.User) {
	if u.Password != nil {
		user.Password = *u.Password
	}
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.IsVerified != nil {
		user.IsVerified = *u.IsVerified
	}
	if u.VerificationToken != nil {
		user.VerificationToken = *u.VerificationToken
	}
	if u.ResetToken != nil {
		user.ResetToken = *u.ResetToken
	}
	if u.ResetTokenExpiry != nil {
		if u.ResetTokenExpiry.IsZero() {
			user.ResetTokenExpiry = nil
		} else {
			t := *u.ResetTokenExpiry
			user.ResetTokenExpiry = &t
		}
	}
	if u.IsAdmin != nil {
		user.IsAdmin = *u.IsAdmin
	}
}

func (s *Users) List() ([]model.User, error) {
	return s.c.all()
}

func (s *Users) Get(id string) (*model.User, error) {
	return s.c.get(id)
}

// GetByEmail looks a user up by email, ignoring case
func (s *Users) GetByEmail(email string) (*model.User, error) {
	return s.c.find(func(u *model.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (s *Users) Find(pred func(*model.User) bool) (*model.User, error) {
	return s.c.find(pred)
}

// Create stores a new user. Emails are unique ignoring case, which is only
// checked here by scanning the collection
func (s *Users) Create(u *model.User) (*model.User, error) {
	err := s.c.insert(*u, func(users []model.User) error {
		for i := range users {
			if strings.EqualFold(users[i].Email, u.Email) {
				return ErrDuplicate
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Users) Update(id string, upd UserUpdate) (*model.User, error) {
	return s.c.modify(id, func(r *model.User) error {
		upd.apply(r)
		return nil
	})
}

// ConsumeVerificationToken verifies the user if token is their pending
// verification token and clears it, keeping only its hash. Repeating it with
// the token that already verified the account returns ErrAlreadyVerified and
// writes nothing
func (s *Users) ConsumeVerificationToken(id, token string) (*model.User, error) {
	return s.c.modify(id, func(u *model.User) error {
		if u.VerifiedWith(token) {
			return ErrAlreadyVerified
		}

		if u.IsVerified || !u.HasVerificationToken(token) {
			return ErrInvalidToken
		}

		u.IsVerified = true
		u.VerificationToken = ""
		u.VerifiedTokenHash = model.HashVerificationToken(token)
		return nil
	})
}

// ConsumeResetToken replaces the password hash if token is still the user's
// unexpired reset token at t, and clears the token in the same write
func (s *Users) ConsumeResetToken(id, token, passwordHash string, t time.Time) (*model.User, error) {
	return s.c.modify(id, func(u *model.User) error {
		if !u.HasResetToken(token) || u.ResetTokenExpired(t) {
			return ErrInvalidToken
		}

		u.Password = passwordHash
		u.ResetToken = ""
		u.ResetTokenExpiry = nil
		return nil
	})
}

// ClearExpiredResetTokens drops reset tokens that expired before t and
// returns how many were removed
func (s *Users) ClearExpiredResetTokens(t time.Time) (int, error) {
	return s.c.modifyWhere(
		func(u *model.User) bool {
			return u.ResetToken != "" && u.ResetTokenExpired(t)
		},
		func(u *model.User) {
			u.ResetToken = ""
			u.ResetTokenExpiry = nil
		},
	)
}
