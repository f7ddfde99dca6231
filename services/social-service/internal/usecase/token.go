package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/config"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/social-api/services/social-service/pkg/types"
	"github.com/vasapolrittideah/social-api/shared/auth"
)

// TokenUsecase issues and verifies the signed tokens of every kind.
type TokenUsecase interface {
	// Issue signs a token of kind for payload. Refresh tokens are not
	// persisted by Issue; use IssuePair or persist them yourself.
	Issue(ctx context.Context, kind types.TokenType, payload TokenPayload, opts ...IssueOption) (string, error)

	// Verify checks signature, expiry and token kind. Refresh tokens must also
	// have a persisted record.
	Verify(ctx context.Context, kind types.TokenType, token string) (*types.JWTClaims, error)

	// IssuePair issues an access token and a persisted refresh token.
	IssuePair(ctx context.Context, payload TokenPayload) (*types.Tokens, error)

	// Revoke deletes the refresh token record. Revoking an absent token is
	// not an error.
	Revoke(ctx context.Context, userID, token string) error

	// RevokeAll deletes every refresh token of userID.
	RevokeAll(ctx context.Context, userID string) error

	// Rotate replaces oldToken with a new refresh token that keeps the old
	// expiry. The old token never verifies again.
	Rotate(ctx context.Context, userID, oldToken string) (string, error)
}

// TokenPayload is the application data embedded in a token.
type TokenPayload struct {
	UserID string
	Verify model.VerifyStatus
}

type issueOptions struct {
	expiresIn time.Duration
	expiresAt time.Time
}

// IssueOption overrides the default expiry of a token kind.
type IssueOption func(*issueOptions)

// ExpiresIn sets the lifetime of the token.
func ExpiresIn(d time.Duration) IssueOption {
	return func(o *issueOptions) { o.expiresIn = d }
}

// ExpiresAt sets the absolute expiry of the token.
func ExpiresAt(t time.Time) IssueOption {
	return func(o *issueOptions) { o.expiresAt = t }
}

type tokenPolicy struct {
	secret    string
	expiresIn time.Duration
}

type tokenUsecase struct {
	jwtAuth  auth.JWTAuthenticator
	repo     repository.RefreshTokenRepository
	policies map[types.TokenType]tokenPolicy
	timeout  time.Duration
	now      func() time.Time
}

func NewTokenUsecase(
	jwtAuth auth.JWTAuthenticator,
	repo repository.RefreshTokenRepository,
	authCfg config.AuthConfig,
	timeout time.Duration,
) TokenUsecase {
	return &tokenUsecase{
		jwtAuth: jwtAuth,
		repo:    repo,
		policies: map[types.TokenType]tokenPolicy{
			types.AccessToken:         {authCfg.AccessTokenSecret, authCfg.AccessTokenExpiresIn},
			types.RefreshToken:        {authCfg.RefreshTokenSecret, authCfg.RefreshTokenExpiresIn},
			types.EmailVerifyToken:    {authCfg.EmailVerifyTokenSecret, authCfg.EmailVerifyTokenExpiresIn},
			types.ForgotPasswordToken: {authCfg.ForgotPasswordTokenSecret, authCfg.ForgotPasswordTokenExpiresIn},
		},
		timeout: timeout,
		now:     time.Now,
	}
}

func (u *tokenUsecase) policy(kind types.TokenType) (tokenPolicy, error) {
	p, ok := u.policies[kind]
	if !ok {
		return tokenPolicy{}, fmt.Errorf("unknown token type %d", kind)
	}
	return p, nil
}

func (u *tokenUsecase) Issue(
	_ context.Context,
	kind types.TokenType,
	payload TokenPayload,
	opts ...IssueOption,
) (string, error) {
	p, err := u.policy(kind)
	if err != nil {
		return "", err
	}

	o := issueOptions{expiresIn: p.expiresIn}
	for _, opt := range opts {
		opt(&o)
	}

	now := u.now()
	expiresAt := now.Add(o.expiresIn)
	if !o.expiresAt.IsZero() {
		expiresAt = o.expiresAt
	}

	verify := int(payload.Verify)
	claims := types.JWTClaims{
		UserID:    payload.UserID,
		TokenType: kind,
		Verify:    &verify,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.jwtAuth.Issuer(),
			Audience:  jwt.ClaimStrings{u.jwtAuth.Audience()},
		},
	}

	token, err := u.jwtAuth.GenerateToken(claims, p.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}

	return token, nil
}

func (u *tokenUsecase) Verify(ctx context.Context, kind types.TokenType, token string) (*types.JWTClaims, error) {
	p, err := u.policy(kind)
	if err != nil {
		return nil, err
	}

	claims := &types.JWTClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(token, p.secret, claims); err != nil {
		return nil, verifyErr(err, claims)
	}

	if claims.TokenType != kind || claims.UserID == "" {
		return nil, ErrTokenMalformed.WithMetadata(map[string]any{"reason": "token_type"})
	}

	if kind != types.RefreshToken {
		return claims, nil
	}

	ctx, cancel := u.bound(ctx)
	defer cancel()

	if _, err := u.repo.GetToken(ctx, claims.UserID, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenRevoked
		}
		return nil, fmt.Errorf("look up refresh token: %w", err)
	}

	return claims, nil
}

// verifyErr maps a jwt validation failure onto the token errors, attaching
// the relevant timestamp.
func verifyErr(err error, claims *types.JWTClaims) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired) && claims.ExpiresAt != nil:
		at := claims.ExpiresAt.UTC().Format(time.RFC3339)
		return ErrTokenExpired.
			WithParams(at).
			WithMetadata(map[string]any{"reason": "expired", "expired_at": at}).
			WithCause(err)
	case errors.Is(err, jwt.ErrTokenNotValidYet) && claims.NotBefore != nil:
		at := claims.NotBefore.UTC().Format(time.RFC3339)
		return ErrTokenNotYetValid.
			WithParams(at).
			WithMetadata(map[string]any{"reason": "not_before", "not_before": at}).
			WithCause(err)
	default:
		return ErrTokenMalformed.
			WithMetadata(map[string]any{"reason": "malformed"}).
			WithCause(err)
	}
}

func (u *tokenUsecase) IssuePair(ctx context.Context, payload TokenPayload) (*types.Tokens, error) {
	userID, err := bson.ObjectIDFromHex(payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", payload.UserID, err)
	}

	accessToken, err := u.Issue(ctx, types.AccessToken, payload)
	if err != nil {
		return nil, err
	}

	expiresAt := u.now().Add(u.policies[types.RefreshToken].expiresIn)
	refreshToken, err := u.Issue(ctx, types.RefreshToken, payload, ExpiresAt(expiresAt))
	if err != nil {
		return nil, err
	}

	ctx, cancel := u.bound(ctx)
	defer cancel()

	if _, err := u.repo.CreateToken(ctx, &model.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &types.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *tokenUsecase) Revoke(ctx context.Context, userID, token string) error {
	ctx, cancel := u.bound(ctx)
	defer cancel()

	if _, err := u.repo.DeleteToken(ctx, userID, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (u *tokenUsecase) RevokeAll(ctx context.Context, userID string) error {
	ctx, cancel := u.bound(ctx)
	defer cancel()

	if _, err := u.repo.DeleteUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}
	return nil
}

func (u *tokenUsecase) Rotate(ctx context.Context, userID, oldToken string) (string, error) {
	claims, err := u.Verify(ctx, types.RefreshToken, oldToken)
	if err != nil {
		return "", err
	}
	if claims.UserID != userID {
		return "", ErrTokenUserMismatch
	}

	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return "", ErrTokenMalformed
	}

	var verify model.VerifyStatus
	if claims.Verify != nil {
		verify = model.VerifyStatus(*claims.Verify)
	}

	expiresAt := claims.ExpiresAt.Time
	next, err := u.Issue(ctx, types.RefreshToken, TokenPayload{UserID: userID, Verify: verify}, ExpiresAt(expiresAt))
	if err != nil {
		return "", err
	}

	ctx, cancel := u.bound(ctx)
	defer cancel()

	if _, err := u.repo.RotateToken(ctx, userID, oldToken, &model.RefreshToken{
		UserID:    objectID,
		Token:     next,
		ExpiresAt: expiresAt,
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTokenRevoked
		}
		return "", fmt.Errorf("rotate refresh token: %w", err)
	}

	return next, nil
}

func (u *tokenUsecase) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.timeout)
}
