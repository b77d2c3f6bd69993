package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionTTL = time.Hour * 24 * 7

var ErrInvalidToken = errors.New("session token invalid")

type SessionClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}

// Sessions issues and checks HS256 signed session tokens. Nothing is kept
// server side, the token carries everything
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    SessionTTL,
		now:    time.Now,
	}
}

// Issue signs a token for the given user that expires after the session TTL.
// The expiry is returned so the cookie can match it
func (s *Sessions) Issue(userID, email string, isAdmin bool) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// Verify checks the signature and expiry of a token. Every failure
// (malformed, tampered, expired, wrong algorithm) is reported as ErrInvalidToken
func (s *Sessions) Verify(token string) (*SessionClaims, error) {
	var claims SessionClaims

	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !t.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
