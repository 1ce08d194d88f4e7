package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.NoError(t, ComparePassword(hash, "admin123"))
	assert.Error(t, ComparePassword(hash, "admin124"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestDecoyHashMatchesConfiguredCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, 5, 6} {
		decoy, err := NewDecoyHash(cost)
		require.NoError(t, err)
		assert.Equal(t, cost, decoy.Cost())

		stored, err := HashPassword("admin123", cost)
		require.NoError(t, err)
		storedCost, err := bcrypt.Cost([]byte(stored))
		require.NoError(t, err)
		assert.Equal(t, storedCost, decoy.Cost())
	}

	decoy, err := NewDecoyHash(99)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, decoy.Cost())
}
