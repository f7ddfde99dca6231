package middleware

import (
	"net/http"

	"github.com/vasapolrittideah/social-api/shared/i18n"
)

// Locale negotiates the request language and stores its translator in the
// request context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trans := bundle.Negotiate(r)
			w.Header().Set("Content-Language", trans.Locale())
			next.ServeHTTP(w, r.WithContext(i18n.WithTranslator(r.Context(), trans)))
		})
	}
}
