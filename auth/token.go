package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors for the three distinguishable token validation failures.
// They are kept apart for logging and tests; the HTTP boundary collapses all
// of them into one generic unauthorized response.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token has expired")
)

const tokenIssuer = "bulletin"

// TokenIssuer manufactures signed, time-bounded bearer tokens binding a
// subject identity. Issuance is stateless: no record of issued tokens is
// kept, and validity rests entirely on the HMAC signature and expiry.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with secret, with tokens
// valid for the given duration.
func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), duration: duration}
}

// Issue creates a signed token with subject = subjectID, issued now and
// expiring after the configured validity window.
func (i *TokenIssuer) Issue(subjectID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.duration)
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// TokenValidator checks incoming bearer tokens against the server secret.
type TokenValidator struct {
	secret []byte
}

// NewTokenValidator creates a TokenValidator verifying with secret.
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// Validate parses and verifies a token string and returns the subject
// identity it binds. Failures are reported as ErrTokenMalformed,
// ErrTokenBadSignature, or ErrTokenExpired, checked in that order.
func (v *TokenValidator) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrTokenBadSignature
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}
