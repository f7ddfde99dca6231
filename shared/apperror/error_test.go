package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapTranslator map[string]string

func (m mapTranslator) T(key any, params ...string) (string, error) {
	text, ok := m[key.(string)]
	if !ok {
		return "", fmt.Errorf("unknown key %v", key)
	}
	if len(params) > 0 {
		text = fmt.Sprintf(text, params[0])
	}
	return text, nil
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	err := New(NotFound)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "error.not_found", err.Key)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
	assert.Equal(t, "NOT_FOUND: Resource not found", err.Error())

	custom := New(BadRequest, WithCode("METHOD_NOT_ALLOWED"), WithStatus(http.StatusMethodNotAllowed))
	assert.Equal(t, http.StatusMethodNotAllowed, custom.HTTPStatus())
	assert.False(t, BadRequest.IsServer())
	assert.True(t, GatewayTimeout.IsServer())
}

func TestError_CopiesDoNotMutateSentinel(t *testing.T) {
	t.Parallel()

	sentinel := New(Unauthorized, WithCode("TOKEN_EXPIRED"), WithKey("auth.token_expired"))
	cause := errors.New("jwt: token is expired")

	err := sentinel.
		WithParams("2024-01-01T00:00:00Z").
		WithMetadata(map[string]any{"expired_at": "2024-01-01T00:00:00Z"}).
		WithCause(cause)

	assert.Nil(t, sentinel.Metadata)
	assert.Nil(t, sentinel.Params)
	assert.NoError(t, sentinel.Unwrap())

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "2024-01-01T00:00:00Z", err.Metadata["expired_at"])

	wrapped := fmt.Errorf("refresh: %w", err)
	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, New(Unauthorized, WithCode("TOKEN_REVOKED")))
}

func TestError_Resolve(t *testing.T) {
	t.Parallel()

	trans := mapTranslator{
		"auth.token_expired": "Token expired at %s",
		"error.conflict":     "Resource already exists",
	}

	tests := []struct {
		name    string
		err     *Error
		trans   Translator
		want    string
		wantErr bool
	}{
		{
			name:  "translated with params",
			err:   New(Unauthorized, WithKey("auth.token_expired", "noon")),
			trans: trans,
			want:  "Token expired at noon",
		},
		{
			name:  "kind key",
			err:   New(Conflict),
			trans: trans,
			want:  "Resource already exists",
		},
		{
			name:    "missing key falls back to message",
			err:     New(BadRequest, WithKey("nope"), WithMessage("fallback")),
			trans:   trans,
			want:    "fallback",
			wantErr: true,
		},
		{
			name:    "missing key falls back to kind message",
			err:     New(Forbidden, WithKey("nope")),
			trans:   trans,
			want:    "Forbidden",
			wantErr: true,
		},
		{
			name:  "fixed message wins",
			err:   New(Conflict, WithFixedMessage("taken")),
			trans: trans,
			want:  "taken",
		},
		{
			name: "no translator",
			err:  New(Conflict),
			want: "Resource already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := tt.err.Resolve(tt.trans)
			assert.Equal(t, tt.want, msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestError_ResolveRecoversPanics(t *testing.T) {
	t.Parallel()

	msg, err := New(Unauthorized, WithKey("boom")).Resolve(panicTranslator{})
	require.Error(t, err)
	assert.Equal(t, "Unauthorized", msg)
}

type panicTranslator struct{}

func (panicTranslator) T(any, ...string) (string, error) { panic("not enough params") }

func TestFrom(t *testing.T) {
	t.Parallel()

	assert.Nil(t, From(nil))

	sentinel := New(Conflict)
	assert.Same(t, sentinel, From(fmt.Errorf("wrap: %w", sentinel)))

	plain := errors.New("boom")
	converted := From(plain)
	assert.Equal(t, InternalServer, converted.Kind)
	assert.ErrorIs(t, converted, plain)
}
