package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 1)

	signed, err := m.Generate("507f1f77bcf86cd799439011", "al@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.Equal(t, "al@x.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", 1).Generate("u1", "a@b.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 1).Verify(signed)
	require.Error(t, err)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	m := NewManager("test-secret", 1)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tok)
		require.Error(t, err, "token %q should not verify", tok)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := &Manager{secret: []byte("test-secret"), expiry: -time.Minute}

	signed, err := m.Generate("u1", "a@b.com")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.Error(t, err)
}
