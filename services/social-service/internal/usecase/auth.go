package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/social-api/services/social-service/pkg/types"
	"github.com/vasapolrittideah/social-api/shared/i18n"
	"github.com/vasapolrittideah/social-api/shared/mailer"
	"github.com/vasapolrittideah/social-api/shared/provider"
	"github.com/vasapolrittideah/social-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates an unverified user and mails its email verify token.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)

	// VerifyCredentials returns the user owning email when password matches.
	VerifyCredentials(ctx context.Context, email, password string) (*model.User, error)

	// Login issues a token pair for a user whose credentials were verified.
	Login(ctx context.Context, user *model.User) (*types.Tokens, error)

	// Logout revokes refreshToken.
	Logout(ctx context.Context, refreshToken string) error

	// RefreshToken rotates refreshToken and issues a new access token.
	RefreshToken(ctx context.Context, refreshToken string) (*types.Tokens, error)

	// VerifyEmailToken checks an email verify token against the one stored
	// on its user.
	VerifyEmailToken(ctx context.Context, token string) (*types.JWTClaims, error)

	// VerifyEmail consumes the stored email verify token of userID and
	// issues a token pair carrying the verified status.
	VerifyEmail(ctx context.Context, userID string) (*types.Tokens, error)

	// ResendVerifyEmail replaces the email verify token of userID and mails it.
	ResendVerifyEmail(ctx context.Context, userID string) error

	// ForgotPassword stores and mails a forgot password token. Unknown
	// emails are accepted silently.
	ForgotPassword(ctx context.Context, email string) error

	// VerifyForgotPassword checks a forgot password token against the one
	// stored on its user.
	VerifyForgotPassword(ctx context.Context, token string) (*types.JWTClaims, error)

	// ResetPassword sets a new password for the owner of a forgot password token.
	ResetPassword(ctx context.Context, params ResetPasswordParams) error

	// ChangePassword replaces the password of userID after checking the old one.
	ChangePassword(ctx context.Context, params ChangePasswordParams) error

	// GoogleLogin signs in, or signs up, the owner of a Google id token.
	GoogleLogin(ctx context.Context, idToken string) (*types.Tokens, bool, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth time.Time
}

// ResetPasswordParams defines the parameters for resetting a password.
type ResetPasswordParams struct {
	Token    string
	Password string
}

// ChangePasswordParams defines the parameters for changing a password.
type ChangePasswordParams struct {
	UserID      string
	OldPassword string
	Password    string
}

// AuthOptions holds the settings of AuthUsecase.
type AuthOptions struct {
	ClientURL             string
	RevokeSessionsOnReset bool
}

type authUsecase struct {
	userRepo     repository.UserRepository
	identityRepo repository.IdentityRepository
	tokens       TokenUsecase
	mail         mailer.Sender
	google       provider.GoogleVerifier
	opts         AuthOptions
	logger       *zerolog.Logger
}

// NewAuthUsecase creates the auth usecase. google may be nil, which disables
// Google sign-in.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	identityRepo repository.IdentityRepository,
	tokens TokenUsecase,
	mail mailer.Sender,
	google provider.GoogleVerifier,
	opts AuthOptions,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		tokens:       tokens,
		mail:         mail,
		google:       google,
		opts:         opts,
		logger:       logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id := bson.NewObjectID()
	verifyToken, err := u.tokens.Issue(ctx, types.EmailVerifyToken, TokenPayload{
		UserID: id.Hex(),
		Verify: model.Unverified,
	})
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		ID:               id,
		Name:             params.Name,
		Email:            params.Email,
		Username:         defaultUsername(id),
		DateOfBirth:      params.DateOfBirth,
		PasswordHash:     passwordHash,
		EmailVerifyToken: verifyToken,
		Verify:           model.Unverified,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	if err := u.sendVerifyEmail(ctx, user.Email, verifyToken); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send verify email")
	}

	return user, nil
}

func (u *authUsecase) VerifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, user *model.User) (*types.Tokens, error) {
	if user.Verify == model.Banned {
		return nil, ErrUserBanned
	}

	return u.tokens.IssuePair(ctx, TokenPayload{
		UserID: user.ID.Hex(),
		Verify: user.Verify,
	})
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := u.tokens.Verify(ctx, types.RefreshToken, refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}
		return err
	}

	return u.tokens.Revoke(ctx, claims.UserID, refreshToken)
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*types.Tokens, error) {
	claims, err := u.tokens.Verify(ctx, types.RefreshToken, refreshToken)
	if err != nil {
		return nil, err
	}

	next, err := u.tokens.Rotate(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, err
	}

	var verify model.VerifyStatus
	if claims.Verify != nil {
		verify = model.VerifyStatus(*claims.Verify)
	}

	access, err := u.tokens.Issue(ctx, types.AccessToken, TokenPayload{UserID: claims.UserID, Verify: verify})
	if err != nil {
		return nil, err
	}

	return &types.Tokens{AccessToken: access, RefreshToken: next}, nil
}

func (u *authUsecase) VerifyEmailToken(ctx context.Context, token string) (*types.JWTClaims, error) {
	claims, err := u.tokens.Verify(ctx, types.EmailVerifyToken, token)
	if err != nil {
		return nil, err
	}

	user, err := u.getUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	switch {
	case user.EmailVerifyToken == "":
		return nil, ErrEmailAlreadyVerified
	case user.EmailVerifyToken != token:
		return nil, ErrEmailVerifyTokenInvalid
	}

	return claims, nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, userID string) (*types.Tokens, error) {
	consumed, err := u.userRepo.ConsumeEmailVerifyToken(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !consumed {
		if _, err := u.getUser(ctx, userID); err != nil {
			return nil, err
		}
		return nil, ErrEmailAlreadyVerified
	}

	return u.tokens.IssuePair(ctx, TokenPayload{UserID: userID, Verify: model.Verified})
}

func (u *authUsecase) ResendVerifyEmail(ctx context.Context, userID string) error {
	user, err := u.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Verify == model.Verified {
		return ErrEmailAlreadyVerified
	}
	if user.Verify == model.Banned {
		return ErrUserBanned
	}

	token, err := u.tokens.Issue(ctx, types.EmailVerifyToken, TokenPayload{UserID: userID, Verify: user.Verify})
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		EmailVerifyToken: &token,
	}); err != nil {
		return err
	}

	return u.sendVerifyEmail(ctx, user.Email, token)
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			u.logger.Debug().Str("email", email).Msg("forgot password requested for unknown email")
			return nil
		}
		return err
	}

	token, err := u.tokens.Issue(ctx, types.ForgotPasswordToken, TokenPayload{
		UserID: user.ID.Hex(),
		Verify: user.Verify,
	})
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		ForgotPasswordToken: &token,
	}); err != nil {
		return err
	}

	link := u.link("/reset-password", "token", token)
	return u.send(ctx, user.Email, "mail.forgot_password", "Reset your password", link)
}

func (u *authUsecase) VerifyForgotPassword(ctx context.Context, token string) (*types.JWTClaims, error) {
	claims, err := u.tokens.Verify(ctx, types.ForgotPasswordToken, token)
	if err != nil {
		return nil, err
	}

	// The token must be the one stored on the user it names, so a token
	// replaced by a later request or already used no longer resets.
	user, err := u.getUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.ForgotPasswordToken == "" || user.ForgotPasswordToken != token {
		return nil, ErrForgotPasswordTokenInvalid
	}

	return claims, nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	claims, err := u.VerifyForgotPassword(ctx, params.Token)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	empty := ""
	if _, err := u.userRepo.UpdateUser(ctx, claims.UserID, repository.UpdateUserParams{
		PasswordHash:        &passwordHash,
		ForgotPasswordToken: &empty,
	}); err != nil {
		return err
	}

	if u.opts.RevokeSessionsOnReset {
		return u.tokens.RevokeAll(ctx, claims.UserID)
	}

	return nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	user, err := u.getUser(ctx, params.UserID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(params.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		return ErrOldPasswordIncorrect
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = u.userRepo.UpdateUser(ctx, params.UserID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	return err
}

func (u *authUsecase) GoogleLogin(ctx context.Context, idToken string) (*types.Tokens, bool, error) {
	if u.google == nil {
		return nil, false, ErrOAuthDisabled
	}

	account, err := u.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, false, ErrGoogleTokenInvalid.WithCause(err)
	}
	if !account.EmailVerified {
		return nil, false, ErrGoogleEmailUnverified
	}

	identity, err := u.identityRepo.GetIdentityByProvider(ctx, account.Subject, model.ProviderGoogle)
	switch {
	case err == nil:
		if err := u.identityRepo.UpdateLastLogin(ctx, identity.ID.Hex()); err != nil {
			return nil, false, err
		}
		user, err := u.getUser(ctx, identity.UserID.Hex())
		if err != nil {
			return nil, false, err
		}
		tokens, err := u.Login(ctx, user)
		return tokens, false, err
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, err
	}

	user, created, err := u.findOrCreateGoogleUser(ctx, account)
	if err != nil {
		return nil, false, err
	}

	if _, err := u.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:     user.ID,
		Provider:   model.ProviderGoogle,
		ProviderID: account.Subject,
		Email:      account.Email,
	}); err != nil && !errors.Is(err, repository.ErrDuplicateKey) {
		return nil, false, err
	}

	tokens, err := u.Login(ctx, user)
	return tokens, created, err
}

func (u *authUsecase) findOrCreateGoogleUser(
	ctx context.Context,
	account *provider.GoogleAccount,
) (*model.User, bool, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, account.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	secret, err := security.RandomSecret(32)
	if err != nil {
		return nil, false, err
	}
	passwordHash, err := security.HashPassword(secret)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	id := bson.NewObjectID()
	name, _, _ := strings.Cut(account.Email, "@")
	user, err = u.userRepo.CreateUser(ctx, &model.User{
		ID:           id,
		Name:         name,
		Email:        account.Email,
		Username:     defaultUsername(id),
		PasswordHash: passwordHash,
		Verify:       model.Verified,
	})
	if err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (u *authUsecase) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) sendVerifyEmail(ctx context.Context, to, token string) error {
	link := u.link("/verify-email", "token", token)
	return u.send(ctx, to, "mail.verify_email", "Verify your email", link)
}

// send mails the template at key, localized for the caller, with link as
// its only parameter.
func (u *authUsecase) send(ctx context.Context, to, key, fallbackSubject, link string) error {
	anchor := fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(link), html.EscapeString(link))

	err := u.mail.Send(ctx, mailer.Email{
		To:       []string{to},
		Subject:  i18n.T(ctx, key+".subject", fallbackSubject),
		HTMLBody: i18n.T(ctx, key+".body", "<p>"+anchor+"</p>", anchor),
		Body:     link,
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", key, err)
	}

	return nil
}

func (u *authUsecase) link(path, param, value string) string {
	q := url.Values{}
	q.Set(param, value)
	return strings.TrimRight(u.opts.ClientURL, "/") + path + "?" + q.Encode()
}

func defaultUsername(id bson.ObjectID) string {
	return "user" + id.Hex()
}
