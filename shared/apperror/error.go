// Package apperror defines the closed set of API errors and how their
// messages are resolved against a caller's locale.
package apperror

import (
	"errors"
	"fmt"
	"maps"
)

// Translator resolves a translation key. It is satisfied by ut.Translator.
type Translator interface {
	T(key any, params ...string) (string, error)
}

// Error is an API error. Values are immutable; the With* methods return copies,
// so package-level sentinels can be shared between requests.
type Error struct {
	Kind          Kind
	Code          string
	Key           string
	Message       string
	Params        []string
	Metadata      map[string]any
	PreferMessage bool
	Status        int

	cause error
}

// Option configures an Error built by New.
type Option func(*Error)

// WithCode overrides the canonical machine code of the kind.
func WithCode(code string) Option {
	return func(e *Error) { e.Code = code }
}

// WithKey overrides the canonical translation key of the kind.
func WithKey(key string, params ...string) Option {
	return func(e *Error) {
		e.Key = key
		e.Params = params
	}
}

// WithMessage sets the fixed fallback message.
func WithMessage(msg string) Option {
	return func(e *Error) { e.Message = msg }
}

// WithFixedMessage sets a fixed message that takes priority over translation.
func WithFixedMessage(msg string) Option {
	return func(e *Error) {
		e.Message = msg
		e.PreferMessage = true
	}
}

// WithStatus overrides the HTTP status bound to the kind.
func WithStatus(status int) Option {
	return func(e *Error) { e.Status = status }
}

// New builds an Error of the given kind.
func New(kind Kind, opts ...Option) *Error {
	e := &Error{
		Kind: kind,
		Code: kind.Code(),
		Key:  kind.Key(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors with the same kind and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// HTTPStatus returns the status code the error is rendered with.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.Status()
}

// WithMetadata returns a copy of e with the given metadata merged in.
func (e *Error) WithMetadata(md map[string]any) *Error {
	c := e.clone()
	if c.Metadata == nil {
		c.Metadata = make(map[string]any, len(md))
	}
	maps.Copy(c.Metadata, md)
	return c
}

// WithCause returns a copy of e wrapping cause. The cause is never rendered.
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.cause = cause
	return c
}

// WithParams returns a copy of e with translation parameters replaced.
func (e *Error) WithParams(params ...string) *Error {
	c := e.clone()
	c.Params = params
	return c
}

// Resolve returns the message to show the caller. An explicit prioritised
// message wins; otherwise the key is translated, falling back to the fixed
// message and then to the kind's generic message. A lookup failure is
// returned alongside the fallback so the caller can log it.
func (e *Error) Resolve(t Translator) (string, error) {
	if e.PreferMessage && e.Message != "" {
		return e.Message, nil
	}

	var lookupErr error
	if t != nil && e.Key != "" {
		msg, err := translate(t, e.Key, e.Params)
		if err == nil && msg != "" {
			return msg, nil
		}
		lookupErr = err
		if lookupErr == nil {
			lookupErr = fmt.Errorf("empty translation for %q", e.Key)
		}
	}

	if e.Message != "" {
		return e.Message, lookupErr
	}

	return e.Kind.DefaultMessage(), lookupErr
}

func translate(t Translator, key string, params []string) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("translate %q: %v", key, r)
		}
	}()
	return t.T(key, params...)
}

func (e *Error) clone() *Error {
	c := *e
	if e.Metadata != nil {
		c.Metadata = maps.Clone(e.Metadata)
	}
	if e.Params != nil {
		c.Params = append([]string(nil), e.Params...)
	}
	return &c
}

// From converts any error into an *Error. Unknown errors become InternalServer
// wrapping the original as cause.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(InternalServer).WithCause(err)
}
