package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secr3t!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "Secr3t!", hash)
	assert.True(t, CompareHashAndPassword(hash, "Secr3t!"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPassword_CostFallback(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCompareHashAndPassword_Garbage(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-hash", "pw"))
}
