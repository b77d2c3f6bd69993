package service

import (
	"bitwise74/shop-api/internal/model"
	"bitwise74/shop-api/internal/store"
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data", 0o755))

	s, err := store.New(fs, "/data")
	require.NoError(t, err)

	return s
}

func seedResetTokens(t *testing.T, s *store.Store, now time.Time) {
	t.Helper()

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	_, err := s.Users.Create(&model.User{ID: "user-old", Email: "old@x.com", ResetToken: "stale", ResetTokenExpiry: &past})
	require.NoError(t, err)
	_, err = s.Users.Create(&model.User{ID: "user-new", Email: "new@x.com", ResetToken: "fresh", ResetTokenExpiry: &future})
	require.NoError(t, err)
}

func TestCleanupResetTokens(t *testing.T) {
	s := newStore(t)
	now := time.Now()
	seedResetTokens(t, s, now)

	cleanupResetTokens(s, now)

	old, err := s.Users.Get("user-old")
	require.NoError(t, err)
	assert.Empty(t, old.ResetToken)
	assert.Nil(t, old.ResetTokenExpiry)

	fresh, err := s.Users.Get("user-new")
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh.ResetToken)
	assert.NotNil(t, fresh.ResetTokenExpiry)
}

func TestTokenCleanupTicks(t *testing.T) {
	s := newStore(t)
	seedResetTokens(t, s, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	TokenCleanup(ctx, 10*time.Millisecond, s)

	require.Eventually(t, func() bool {
		u, err := s.Users.Get("user-old")
		return err == nil && u.ResetToken == ""
	}, time.Second, 10*time.Millisecond)
}
