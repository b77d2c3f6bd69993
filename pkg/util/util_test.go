package util

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, err := NewID("user")
	require.NoError(t, err)
	b, err := NewID("user")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "user-"))
	assert.Len(t, a, len("user-")+16)
	assert.NotEqual(t, a, b)
}

func TestGenerateToken(t *testing.T) {
	tok, err := GenerateToken(16)
	require.NoError(t, err)

	raw, err := hex.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
}

func TestRandStr(t *testing.T) {
	s := RandStr(10)
	assert.Len(t, s, 10)
	assert.Equal(t, "", strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}
