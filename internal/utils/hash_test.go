package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash := HashPassword("cleaner123!")

	assert.Len(t, hash, 64)
	assert.NotEqual(t, "cleaner123!", hash)
	assert.Equal(t, hash, HashPassword("cleaner123!"))
	assert.NotEqual(t, hash, HashPassword("cleaner123"))
}

func TestCheckPassword(t *testing.T) {
	stored := HashPassword("correct horse battery staple")

	assert.True(t, CheckPassword("correct horse battery staple", stored))
	assert.False(t, CheckPassword("wrong password", stored))
	assert.False(t, CheckPassword("", stored))
	assert.False(t, CheckPassword("correct horse battery staple", ""))
}
