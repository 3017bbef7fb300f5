package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, h.Compare(hash, "password123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).Cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(1).Cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).Cost)
	assert.Equal(t, 10, NewHasher(10).Cost)
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(InvitationTokenBytes)
	require.NoError(t, err)
	b, err := GenerateToken(InvitationTokenBytes)
	require.NoError(t, err)

	assert.Len(t, a, InvitationTokenBytes*2)
	assert.NotEqual(t, a, b)
}
