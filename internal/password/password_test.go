package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret@123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret@123", hash)
	assert.Len(t, hash, 60)
	assert.True(t, h.Compare(hash, "Secret@123"))
	assert.False(t, h.Compare(hash, "secret@123"))
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("Secret@123")
	require.NoError(t, err)
	b, err := h.Hash("Secret@123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
