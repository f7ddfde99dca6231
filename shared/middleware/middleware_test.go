package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/social-api/shared/apperror"
	"github.com/vasapolrittideah/social-api/shared/i18n"
)

type testClaims struct {
	UserID string
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def", "abc.def", true},
		{"lower case scheme", "bearer abc", "abc", true},
		{"missing", "", "", false},
		{"basic", "Basic Zm9vOmJhcg==", "", false},
		{"empty token", "Bearer  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := BearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTMiddleware(t *testing.T) {
	errBad := apperror.New(apperror.Unauthorized, apperror.WithCode("TOKEN_MALFORMED"))
	missing := apperror.New(apperror.Unauthorized, apperror.WithCode("ACCESS_TOKEN_REQUIRED"))

	verify := func(_ context.Context, token string) (*testClaims, error) {
		if token != "good" {
			return nil, errBad
		}
		return &testClaims{UserID: "u1"}, nil
	}

	var seen *testClaims
	h := NewJWTMiddleware(verify, missing)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext[testClaims](r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		header   string
		status   int
		wantCode string
	}{
		{"valid", "Bearer good", http.StatusNoContent, ""},
		{"missing", "", http.StatusUnauthorized, "ACCESS_TOKEN_REQUIRED"},
		{"invalid", "Bearer bad", http.StatusUnauthorized, "TOKEN_MALFORMED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			require.Equal(t, tt.status, w.Code)
			if tt.wantCode == "" {
				require.NotNil(t, seen)
				assert.Equal(t, "u1", seen.UserID)
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Nil(t, seen)
		})
	}
}

func TestLocale(t *testing.T) {
	bundle, err := i18n.New("en")
	require.NoError(t, err)

	var msg string
	h := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg = i18n.T(r.Context(), "error.not_found", "fallback")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.5")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "vi", w.Header().Get("Content-Language"))
	assert.NotEqual(t, "fallback", msg)

	en, err := bundle.Translator("en").T("error.not_found")
	require.NoError(t, err)
	assert.NotEqual(t, en, msg)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := chimw.RequestID(RequestLogger(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, access map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &access))

	assert.NotEmpty(t, inside["request_id"])
	assert.Equal(t, inside["request_id"], access["request_id"])
	assert.Equal(t, float64(http.StatusTeapot), access["status"])
	assert.Equal(t, "/ping", access["url"])
}
