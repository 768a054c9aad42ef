package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("volunteer1")
	require.NoError(t, err)
	assert.NotEqual(t, "volunteer1", hash)
	assert.True(t, CheckPassword(hash, "volunteer1"))
	assert.False(t, CheckPassword(hash, "volunteer2"))
}

func TestIsStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"short1":      false,
		"onlyletters": false,
		"12345678":    false,
		"letters123":  true,
		"città2024":   true,
	}
	for pw, want := range tests {
		assert.Equal(t, want, IsStrongPassword(pw), pw)
	}
}
