// Package response renders every API reply in one envelope shape.
package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/social-api/shared/apperror"
	"github.com/vasapolrittideah/social-api/shared/i18n"
)

// Success is the envelope of a successful reply.
type Success struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

// Failure is the envelope of a failed reply.
type Failure struct {
	Message   string         `json:"message"`
	Code      string         `json:"code"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	RequestID string         `json:"requestId"`
}

// OK writes a 200 reply whose message is the translation of key.
func OK(w http.ResponseWriter, r *http.Request, key string, result any) {
	JSON(w, r, http.StatusOK, key, result)
}

// Created writes a 201 reply whose message is the translation of key.
func Created(w http.ResponseWriter, r *http.Request, key string, result any) {
	JSON(w, r, http.StatusCreated, key, result)
}

// JSON writes a success envelope with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, key string, result any) {
	render.Status(r, status)
	render.JSON(w, r, Success{
		Message: i18n.T(r.Context(), key, key),
		Result:  result,
	})
}

// Error classifies err and writes the failure envelope.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	appErr, expected := classify(err)

	msg, lookupErr := appErr.Resolve(i18n.FromContext(ctx))
	if lookupErr != nil {
		logger.Warn().Err(lookupErr).Str("key", appErr.Key).Msg("failed to translate error message")
	}

	body := Failure{
		Message:   msg,
		Code:      appErr.Code,
		RequestID: middleware.GetReqID(ctx),
	}
	if expected {
		body.Metadata = appErr.Metadata
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Str("code", appErr.Code).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Str("code", appErr.Code).Msg("request rejected")
	}

	render.Status(r, status)
	render.JSON(w, r, body)
}

// classify maps err onto the taxonomy. The boolean is false for errors that
// were not raised deliberately; their details must not reach the caller.
func classify(err error) (*apperror.Error, bool) {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr, true
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.New(apperror.GatewayTimeout).WithCause(err), true
	default:
		return apperror.New(apperror.InternalServer).WithCause(err), false
	}
}

// Recoverer turns panics into InternalServer replies.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")

			Error(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFound replies to unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, apperror.New(apperror.NotFound))
}

// MethodNotAllowed replies to known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Error(w, r, apperror.New(apperror.BadRequest,
		apperror.WithCode("METHOD_NOT_ALLOWED"),
		apperror.WithStatus(http.StatusMethodNotAllowed),
	))
}
