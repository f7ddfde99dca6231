package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/config"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/social-api/shared/auth"
	"github.com/vasapolrittideah/social-api/shared/mailer"
	"github.com/vasapolrittideah/social-api/shared/provider"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *fakeMailer) last(t *testing.T) mailer.Email {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

type fakeGoogle struct {
	account *provider.GoogleAccount
	err     error
}

func (g *fakeGoogle) VerifyIDToken(context.Context, string) (*provider.GoogleAccount, error) {
	return g.account, g.err
}

var testAuthConfig = config.AuthConfig{
	Algorithm:                    "HS256",
	Issuer:                       "social-api-test",
	AccessTokenSecret:            "access-secret",
	RefreshTokenSecret:           "refresh-secret",
	EmailVerifyTokenSecret:       "verify-secret",
	ForgotPasswordTokenSecret:    "forgot-secret",
	AccessTokenExpiresIn:         15 * time.Minute,
	RefreshTokenExpiresIn:        24 * time.Hour,
	EmailVerifyTokenExpiresIn:    time.Hour,
	ForgotPasswordTokenExpiresIn: time.Hour,
	RevokeSessionsOnReset:        true,
}

type testEnv struct {
	repos  repository.Repositories
	tokens *tokenUsecase
	auth   AuthUsecase
	users  UserUsecase
	follow FollowUsecase
	mail   *fakeMailer
	google *fakeGoogle
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	jwtAuth, err := auth.NewJWTAuthenticator(testAuthConfig.Issuer, testAuthConfig.Issuer, testAuthConfig.Algorithm)
	require.NoError(t, err)

	repos := repository.NewMemoryRepositories()
	tokens := NewTokenUsecase(jwtAuth, repos.RefreshTokens, testAuthConfig, time.Second).(*tokenUsecase)
	mail := &fakeMailer{}
	google := &fakeGoogle{}

	return &testEnv{
		repos:  repos,
		tokens: tokens,
		auth: NewAuthUsecase(repos.Users, repos.Identities, tokens, mail, google, AuthOptions{
			ClientURL:             "http://localhost:3000",
			RevokeSessionsOnReset: testAuthConfig.RevokeSessionsOnReset,
		}, &logger),
		users:  NewUserUsecase(repos.Users),
		follow: NewFollowUsecase(repos.Users, repos.Followers, &logger),
		mail:   mail,
		google: google,
	}
}

func (e *testEnv) register(t *testing.T, email string) *model.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterParams{
		Name:        "Test User",
		Email:       email,
		Password:    "Secret123!",
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) verified(t *testing.T, email string) *model.User {
	t.Helper()
	user := e.register(t, email)
	_, err := e.auth.VerifyEmail(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	user, err = e.repos.Users.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	return user
}
