package validation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/vasapolrittideah/social-api/shared/response"
)

type dataKey[T any] struct{}

// Data returns the validated value of type T attached by Body, Query or Params.
func Data[T any](ctx context.Context) (*T, bool) {
	v, ok := ctx.Value(dataKey[T]{}).(*T)
	return v, ok
}

// WithData attaches a validated value to ctx.
func WithData[T any](ctx context.Context, v *T) context.Context {
	return context.WithValue(ctx, dataKey[T]{}, v)
}

// Body decodes the JSON body into T and validates it before calling next.
func Body[T any](e *Engine, opts ...Option) func(http.Handler) http.Handler {
	return gate[T](e, opts, func(r *http.Request, v *T) error {
		err := render.DecodeJSON(r.Body, v)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	})
}

// Query decodes the query string into T (fields tagged `query`), coercing
// numeric strings, and validates it.
func Query[T any](e *Engine, opts ...Option) func(http.Handler) http.Handler {
	return gate[T](e, opts, func(r *http.Request, v *T) error {
		return e.query.Decode(v, r.URL.Query())
	})
}

// Params decodes chi URL parameters into T (fields tagged `param`) and
// validates it.
func Params[T any](e *Engine, opts ...Option) func(http.Handler) http.Handler {
	return gate[T](e, opts, func(r *http.Request, v *T) error {
		values := url.Values{}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				values.Add(key, rctx.URLParams.Values[i])
			}
		}
		return e.params.Decode(v, values)
	})
}

func gate[T any](
	e *Engine,
	opts []Option,
	decode func(*http.Request, *T) error,
) func(http.Handler) http.Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := new(T)
			if err := decode(r, v); err != nil {
				response.Error(w, r, ErrInvalidBody.WithCause(err))
				return
			}

			if err := e.Validate(r.Context(), v, opts...); err != nil {
				response.Error(w, r, err)
				return
			}

			if o.AttachValidated {
				r = r.WithContext(WithData(r.Context(), v))
			}

			next.ServeHTTP(w, r)
		})
	}
}
