package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnsupportedAlgorithm is returned for signing algorithms other than HMAC.
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// JWTAuthenticator represents a JWT based authenticator.
type JWTAuthenticator struct {
	audience string
	issuer   string
	method   *jwt.SigningMethodHMAC
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance signing with
// the named HMAC algorithm (HS256, HS384 or HS512).
func NewJWTAuthenticator(audience, issuer, algorithm string) (JWTAuthenticator, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return JWTAuthenticator{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	return JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		method:   method,
	}, nil
}

// Issuer returns the issuer stamped on generated tokens.
func (a *JWTAuthenticator) Issuer() string {
	return a.issuer
}

// Audience returns the audience stamped on generated tokens.
func (a *JWTAuthenticator) Audience() string {
	return a.audience
}

// GenerateToken generates a JWT token with the given claims and secret.
// This is generic and accepts any type that implements jwt.Claims.
func (a *JWTAuthenticator) GenerateToken(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(a.method, claims)

	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateTokenWithClaims validates a JWT token and parses it into the provided claims type.
// The claims parameter should be a pointer to a struct that implements jwt.Claims.
// Claims are decoded even when validation fails after the signature was verified,
// so callers can inspect e.g. the expiry of an expired token.
func (a *JWTAuthenticator) ValidateTokenWithClaims(tokenString, secret string, claims jwt.Claims) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{a.method.Alg()}),
	)
	if err != nil {
		return token, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}
