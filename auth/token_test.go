package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-long-enough-for-hmac"

func TestToken_IssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	validator := NewTokenValidator(testSecret)

	token, expiresAt, err := issuer.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subject, err := validator.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestToken_Expired(t *testing.T) {
	// A negative validity window produces a token that is already past its
	// expiry at validation time.
	issuer := NewTokenIssuer(testSecret, -time.Minute)
	validator := NewTokenValidator(testSecret)

	token, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	subject, err := validator.Validate(token)
	assert.Empty(t, subject)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestToken_TamperedSignature(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	validator := NewTokenValidator(testSecret)

	token, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := parts[2]
	flipped := byte('A')
	if sig[len(sig)-1] == 'A' {
		flipped = 'B'
	}
	parts[2] = sig[:len(sig)-1] + string(flipped)
	tampered := strings.Join(parts, ".")

	subject, err := validator.Validate(tampered)
	assert.Empty(t, subject)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestToken_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	validator := NewTokenValidator("a-completely-different-secret")

	token, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestToken_Malformed(t *testing.T) {
	validator := NewTokenValidator(testSecret)

	for _, tokenString := range []string{
		"",
		"garbage",
		"one.two",
		"clearly-not-a-jwt",
	} {
		subject, err := validator.Validate(tokenString)
		assert.Empty(t, subject)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tokenString)
	}
}
