// Package types holds the token types shared by the service's layers.
package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType is the kind of a signed token. Each kind has its own secret
// and expiry.
type TokenType int

const (
	AccessToken TokenType = iota
	RefreshToken
	EmailVerifyToken
	ForgotPasswordToken
)

func (t TokenType) String() string {
	switch t {
	case AccessToken:
		return "access"
	case RefreshToken:
		return "refresh"
	case EmailVerifyToken:
		return "email_verify"
	case ForgotPasswordToken:
		return "forgot_password"
	default:
		return "unknown"
	}
}

// JWTClaims is the payload carried by every token.
type JWTClaims struct {
	UserID    string    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	Verify    *int      `json:"verify,omitempty"`
	jwt.RegisteredClaims
}

// Tokens is an access/refresh token pair.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
