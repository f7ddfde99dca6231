package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New("fr")
	assert.Error(t, err)

	b, err := New("en")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "vi"}, b.Locales())
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	t.Parallel()

	for key := range messagesEN {
		assert.Contains(t, messagesVI, key)
	}
	for key := range messagesVI {
		assert.Contains(t, messagesEN, key)
	}
}

func TestBundle_Negotiate(t *testing.T) {
	t.Parallel()

	b, err := New("en")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"default", "", "", "en"},
		{"accept language", "", "vi-VN,vi;q=0.9,en;q=0.5", "vi"},
		{"unsupported header", "", "de-DE", "en"},
		{"cookie wins", "en", "vi", "en"},
		{"cookie region", "vi_VN", "", "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Accept-Language", tt.header)
			}

			assert.Equal(t, tt.want, b.Negotiate(r).Locale())
		})
	}
}

func TestT(t *testing.T) {
	t.Parallel()

	b, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "fallback", T(context.Background(), "success.login", "fallback"))

	ctx := WithTranslator(context.Background(), b.Translator("vi"))
	assert.Equal(t, "Đăng nhập thành công", T(ctx, "success.login", "fallback"))
	assert.Equal(t, "Mã đã hết hạn lúc noon", T(ctx, "auth.token_expired", "fallback", "noon"))
	assert.Equal(t, "fallback", T(ctx, "auth.token_expired", "fallback"))
	assert.Equal(t, "fallback", T(ctx, "missing.key", "fallback"))

	assert.Equal(t, "en", b.Translator("zz").Locale())
}
