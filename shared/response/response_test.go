package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/social-api/shared/apperror"
	"github.com/vasapolrittideah/social-api/shared/i18n"
)

func serve(t *testing.T, h http.Handler, locale string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	bundle, err := i18n.New("en")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := i18n.WithTranslator(req.Context(), bundle.Translator(locale))
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestOK(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Created(w, r, "success.register", map[string]string{"access_token": "a"})
	}), "vi")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Đăng ký thành công", body["message"])
	assert.Equal(t, map[string]any{"access_token": "a"}, body["result"])
}

func TestError(t *testing.T) {
	t.Parallel()

	expired := apperror.New(apperror.Unauthorized,
		apperror.WithCode("TOKEN_EXPIRED"),
		apperror.WithKey("auth.token_expired"),
	)

	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		message  string
		metadata bool
	}{
		{
			name:     "app error with metadata",
			err:      fmt.Errorf("verify: %w", expired.WithParams("noon").WithMetadata(map[string]any{"expired_at": "noon"})),
			status:   http.StatusUnauthorized,
			code:     "TOKEN_EXPIRED",
			message:  "Token expired at noon",
			metadata: true,
		},
		{
			name:    "deadline",
			err:     fmt.Errorf("query: %w", context.DeadlineExceeded),
			status:  http.StatusGatewayTimeout,
			code:    "GATEWAY_TIMEOUT",
			message: "The operation timed out",
		},
		{
			name:    "unexpected error is hidden",
			err:     errors.New("mongo: connection refused"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, body := serve(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Error(w, r, tt.err)
			}), "en")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, "req-1", body["requestId"])
			if tt.metadata {
				assert.Equal(t, map[string]any{"expired_at": "noon"}, body["metadata"])
			} else {
				assert.NotContains(t, body, "metadata")
			}
			assert.NotContains(t, rec.Body.String(), "mongo")
		})
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})), "en")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, http.HandlerFunc(NotFound), "vi")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Không tìm thấy tài nguyên", body["message"])

	rec, body = serve(t, http.HandlerFunc(MethodNotAllowed), "en")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body["code"])
}
