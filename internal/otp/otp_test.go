package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	s := NewStore(DefaultExpiry)

	code, err := s.Issue("a@example.com", "USR1000", PurposeForgotPassword)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	userID, ok := s.Verify("a@example.com", code, PurposeForgotPassword)
	assert.True(t, ok)
	assert.Equal(t, "USR1000", userID)
}

func TestVerifyIsSingleUse(t *testing.T) {
	s := NewStore(DefaultExpiry)
	code, err := s.Issue("a@example.com", "USR1000", PurposeForgotPassword)
	require.NoError(t, err)

	_, ok := s.Verify("a@example.com", code, PurposeForgotPassword)
	require.True(t, ok)

	_, ok = s.Verify("a@example.com", code, PurposeForgotPassword)
	assert.False(t, ok)
}

func TestVerifyWrongCode(t *testing.T) {
	s := NewStore(DefaultExpiry)
	code, err := s.Issue("a@example.com", "", PurposeForgotUsername)
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, ok := s.Verify("a@example.com", wrong, PurposeForgotUsername)
	assert.False(t, ok)

	// The pending code survives a failed attempt.
	_, ok = s.Verify("a@example.com", code, PurposeForgotUsername)
	assert.True(t, ok)
}

func TestVerifyPurposeMismatch(t *testing.T) {
	s := NewStore(DefaultExpiry)
	code, err := s.Issue("a@example.com", "USR1000", PurposeForgotUsername)
	require.NoError(t, err)

	_, ok := s.Verify("a@example.com", code, PurposeForgotPassword)
	assert.False(t, ok)
}

func TestVerifyExpired(t *testing.T) {
	s := NewStore(DefaultExpiry)
	code, err := s.Issue("a@example.com", "USR1000", PurposeForgotPassword)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(DefaultExpiry + time.Second) }

	_, ok := s.Verify("a@example.com", code, PurposeForgotPassword)
	assert.False(t, ok)
}

func TestIssueReplacesPendingCode(t *testing.T) {
	s := NewStore(DefaultExpiry)
	first, err := s.Issue("a@example.com", "USR1000", PurposeForgotPassword)
	require.NoError(t, err)
	second, err := s.Issue("a@example.com", "USR1000", PurposeForgotPassword)
	require.NoError(t, err)

	if first != second {
		_, ok := s.Verify("a@example.com", first, PurposeForgotPassword)
		assert.False(t, ok)
	}
	_, ok := s.Verify("a@example.com", second, PurposeForgotPassword)
	assert.True(t, ok)
}

func TestCleanupExpired(t *testing.T) {
	s := NewStore(DefaultExpiry)
	_, err := s.Issue("a@example.com", "", PurposeForgotUsername)
	require.NoError(t, err)
	_, err = s.Issue("b@example.com", "", PurposeForgotUsername)
	require.NoError(t, err)

	assert.Zero(t, s.CleanupExpired())

	s.now = func() time.Time { return time.Now().Add(DefaultExpiry + time.Second) }
	assert.Equal(t, 2, s.CleanupExpired())
}
