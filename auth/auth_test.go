package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service, err := NewTokenService("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	token, err := service.Generate("user_1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userId, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", userId)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer, err := NewTokenService("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	verifier, err := NewTokenService("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)

	token, err := issuer.Generate("user_1")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	service, err := NewTokenService("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	_, err = service.Validate("not.a.token")
	assert.Error(t, err)
}

func TestShortSecretRejected(t *testing.T) {
	_, err := NewTokenService("short")
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	passwords := NewPasswordServiceForTest()

	hash, err := passwords.Hash("melody-match-secret")
	require.NoError(t, err)
	require.NotEqual(t, "melody-match-secret", hash)

	assert.NoError(t, passwords.Verify(hash, "melody-match-secret"))
	assert.Error(t, passwords.Verify(hash, "wrong-password"))
}

func TestPasswordTooLongRejected(t *testing.T) {
	passwords := NewPasswordServiceForTest()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := passwords.Hash(string(long))
	assert.Error(t, err)
}
