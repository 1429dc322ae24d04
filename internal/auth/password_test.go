package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret!Pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hashed)

	assert.NoError(t, ComparePassword(hashed, "s3cret!Pass"))
	assert.Error(t, ComparePassword(hashed, "wrong-password"))
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
	// An invalid cost falls back to the bcrypt default instead of failing.
	hashed, err := HashPassword("s3cret!Pass", 99)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hashed, "s3cret!Pass"))
}
