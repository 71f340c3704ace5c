package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, VerifyPassword("s3cret!", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordBadHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-hash"))
	assert.False(t, VerifyPassword("anything", "$bcrypt$whatever"))
	assert.False(t, VerifyPassword("anything", ""))
}

func TestGenerateTempPassword(t *testing.T) {
	p, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.Len(t, p, 12)
	for _, r := range p {
		assert.Contains(t, tempPasswordAlphabet, string(r))
	}
}

func TestGenerateTempPasswordDefaultLength(t *testing.T) {
	p, err := GenerateTempPassword(0)
	require.NoError(t, err)
	assert.Len(t, p, 12)
}
