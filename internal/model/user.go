// Package model defines the records persisted by the store
package model

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Password          string     `json:"password"` // bcrypt or argon2id encoded hash
	Name              string     `json:"name,omitempty"`
	IsVerified        bool       `json:"isVerified"`
	VerificationToken string     `json:"verificationToken,omitempty"` // Single use, cleared once verified
	VerifiedTokenHash string     `json:"verifiedTokenHash,omitempty"` // sha256 of the token that verified the account
	ResetToken        string     `json:"resetToken,omitempty"`
	ResetTokenExpiry  *time.Time `json:"resetTokenExpiry,omitempty"`
	IsAdmin           bool       `json:"isAdmin,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// UserView is what gets sent to clients. Never includes the password hash or tokens
type UserView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	IsVerified bool      `json:"isVerified"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt,
	}
}

// ResetTokenExpired reports whether the reset token stopped being valid at t.
// A token without an expiry never expires
func (u *User) ResetTokenExpired(t time.Time) bool {
	return u.ResetTokenExpiry != nil && u.ResetTokenExpiry.Before(t)
}

func tokenEqual(a, b string) bool {
	return a != "" && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// HashVerificationToken is what gets kept of a verification token once it
// has been used
func HashVerificationToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// HasVerificationToken reports whether token is the pending verification token
func (u *User) HasVerificationToken(token string) bool {
	return tokenEqual(u.VerificationToken, token)
}

// VerifiedWith reports whether token is the one that already verified the account
func (u *User) VerifiedWith(token string) bool {
	return u.IsVerified && token != "" && tokenEqual(u.VerifiedTokenHash, HashVerificationToken(token))
}

// HasResetToken reports whether token is the user's reset token, expired or not
func (u *User) HasResetToken(token string) bool {
	return tokenEqual(u.ResetToken, token)
}
