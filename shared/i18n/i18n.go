// Package i18n holds the message catalogs and picks a translator per request.
package i18n

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// LangCookie is the name of the cookie carrying the preferred language.
const LangCookie = "lang"

// Bundle wraps the universal translator with the application catalogs loaded.
type Bundle struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
}

var catalogs = map[string]map[string]string{
	"en": messagesEN,
	"vi": messagesVI,
}

// New creates a Bundle with every catalog registered. defaultLocale must be
// one of the supported locales.
func New(defaultLocale string) (*Bundle, error) {
	supported := []locales.Translator{en.New(), vi.New()}
	uni := ut.New(supported[0], supported...)

	if _, ok := uni.GetTranslator(defaultLocale); !ok {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	for locale, messages := range catalogs {
		trans, _ := uni.GetTranslator(locale)
		for key, text := range messages {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s translation %q: %w", locale, key, err)
			}
		}
	}

	return &Bundle{uni: uni, defaultLocale: defaultLocale}, nil
}

// Universal exposes the underlying universal translator.
func (b *Bundle) Universal() *ut.UniversalTranslator {
	return b.uni
}

// Locales lists the supported locales.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		out = append(out, locale)
	}
	return out
}

// Translator returns the translator for locale, or the default one.
func (b *Bundle) Translator(locale string) ut.Translator {
	if trans, ok := b.uni.GetTranslator(normalize(locale)); ok {
		return trans
	}
	trans, _ := b.uni.GetTranslator(b.defaultLocale)
	return trans
}

// Negotiate picks a translator from the lang cookie, then the Accept-Language
// header, then the default locale.
func (b *Bundle) Negotiate(r *http.Request) ut.Translator {
	var candidates []string

	if c, err := r.Cookie(LangCookie); err == nil && c.Value != "" {
		candidates = append(candidates, normalize(c.Value))
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
			for _, tag := range tags {
				base, _ := tag.Base()
				candidates = append(candidates, base.String())
			}
		}
	}

	candidates = append(candidates, b.defaultLocale)

	trans, _ := b.uni.FindTranslator(candidates...)
	return trans
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

type contextKey struct{}

// WithTranslator stores trans in ctx.
func WithTranslator(ctx context.Context, trans ut.Translator) context.Context {
	return context.WithValue(ctx, contextKey{}, trans)
}

// FromContext returns the request translator, or nil when none was negotiated.
func FromContext(ctx context.Context) ut.Translator {
	trans, _ := ctx.Value(contextKey{}).(ut.Translator)
	return trans
}

// T translates key with the translator in ctx, returning fallback when the
// lookup is not possible.
func T(ctx context.Context, key, fallback string, params ...string) (msg string) {
	trans := FromContext(ctx)
	if trans == nil {
		return fallback
	}
	// ut panics when fewer params are passed than the text declares.
	defer func() {
		if r := recover(); r != nil {
			msg = fallback
		}
	}()
	msg, err := trans.T(key, params...)
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
