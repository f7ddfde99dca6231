package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrInvalidGoogleToken    = errors.New("invalid google id token")
)

// GoogleAccount is the identity asserted by a Google id token.
type GoogleAccount struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// GoogleVerifier checks Google id tokens.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleAccount, error)
}

// GoogleOAuthProvider verifies id tokens with Google's tokeninfo endpoint.
type GoogleOAuthProvider struct {
	clientID string
	client   *http.Client
}

func NewGoogleOAuthProvider(clientID string, client *http.Client) *GoogleOAuthProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &GoogleOAuthProvider{clientID: clientID, client: client}
}

func (p *GoogleOAuthProvider) VerifyIDToken(ctx context.Context, idToken string) (*GoogleAccount, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithHTTPClient(p.client))
	if err != nil {
		return nil, err
	}

	tokenInfo, err := oauth2Service.Tokeninfo().IdToken(idToken).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	return &GoogleAccount{
		Subject:       tokenInfo.UserId,
		Email:         tokenInfo.Email,
		EmailVerified: tokenInfo.VerifiedEmail,
	}, nil
}
