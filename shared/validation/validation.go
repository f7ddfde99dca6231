// Package validation validates untrusted input against declarative struct
// tags. Inputs are first conformed (trimming, defaults) with mold, then
// checked with validator; fields tagged `check:"<rule>"` are afterwards run
// through registered asynchronous rules, typically ones that consult storage.
//
// Every failing field is reported unless AbortEarly is set.
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/form"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/social-api/shared/apperror"
	"github.com/vasapolrittideah/social-api/shared/i18n"
)

// RuleFunc is an asynchronous rule. It reports whether value is acceptable;
// a non-nil error aborts validation.
type RuleFunc func(ctx context.Context, value any) (bool, error)

// FieldError describes one invalid field.
type FieldError struct {
	Path       string      `json:"path"`
	Message    string      `json:"message"`
	Key        string      `json:"key"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`

	raw string
}

// Suggestion is extra guidance attached to some field errors.
type Suggestion struct {
	Key     string   `json:"key"`
	Message string   `json:"message"`
	Params  []string `json:"params,omitempty"`
}

// Options tune a single validation.
type Options struct {
	AbortEarly      bool
	AttachValidated bool
	FormatErrors    bool
	ErrorMessage    string
	ErrorStatusCode int
	LogErrors       bool
}

// Option mutates Options.
type Option func(*Options)

func AbortEarly() Option { return func(o *Options) { o.AbortEarly = true } }

// Detached keeps the validated value out of the request context.
func Detached() Option { return func(o *Options) { o.AttachValidated = false } }

// RawErrors reports validator's raw messages instead of structured details.
func RawErrors() Option { return func(o *Options) { o.FormatErrors = false } }

// ErrorMessage sets the fallback text of the validation error.
func ErrorMessage(msg string) Option { return func(o *Options) { o.ErrorMessage = msg } }

// ErrorStatusCode sets the status code used on failure.
func ErrorStatusCode(code int) Option { return func(o *Options) { o.ErrorStatusCode = code } }

// Quiet disables logging of failures.
func Quiet() Option { return func(o *Options) { o.LogErrors = false } }

func defaultOptions() Options {
	return Options{
		AttachValidated: true,
		FormatErrors:    true,
		ErrorStatusCode: http.StatusUnprocessableEntity,
		LogErrors:       true,
	}
}

// ErrInvalidBody is returned when the payload cannot be decoded at all.
var ErrInvalidBody = apperror.New(
	apperror.BadRequest,
	apperror.WithCode("INVALID_BODY"),
	apperror.WithKey("validation.invalid_body"),
	apperror.WithMessage("Request body is invalid"),
)

var errTimeout = apperror.New(apperror.GatewayTimeout, apperror.WithMessage("validation timed out"))

// Engine validates payloads. Rules must be registered before first use.
type Engine struct {
	validate *validator.Validate
	conform  *mold.Transformer
	query    *form.Decoder
	params   *form.Decoder
	rules    map[string]RuleFunc
	timeout  time.Duration
	logger   *zerolog.Logger
}

// New creates an Engine whose messages are translated with bundle.
func New(bundle *i18n.Bundle, timeout time.Duration, logger *zerolog.Logger) (*Engine, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	for tag, fn := range customValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validator: %w", tag, err)
		}
	}

	if err := registerTranslations(v, bundle.Universal()); err != nil {
		return nil, err
	}

	query := form.NewDecoder()
	query.SetTagName("query")
	params := form.NewDecoder()
	params.SetTagName("param")

	return &Engine{
		validate: v,
		conform:  modifiers.New(),
		query:    query,
		params:   params,
		rules:    make(map[string]RuleFunc),
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// RegisterRule makes fn available to fields tagged `check:"name"`.
func (e *Engine) RegisterRule(name string, fn RuleFunc) {
	e.rules[name] = fn
}

// Validate conforms and validates v, which must be a pointer to a struct.
// On success v holds the coerced value. Failures are *apperror.Error values.
func (e *Engine) Validate(ctx context.Context, v any, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if err := e.conform.Struct(ctx, v); err != nil {
		return fmt.Errorf("conform payload: %w", err)
	}

	trans := i18n.FromContext(ctx)

	var fieldErrs []FieldError

	err := e.validate.StructCtx(ctx, v)
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			fieldErrs = append(fieldErrs, newFieldError(fe, trans))
			if o.AbortEarly {
				break
			}
		}
	default:
		return fmt.Errorf("validate payload: %w", err)
	}

	if !o.AbortEarly || len(fieldErrs) == 0 {
		checkErrs, err := e.runChecks(ctx, v, fieldErrs, o.AbortEarly, trans)
		if err != nil {
			return err
		}
		fieldErrs = append(fieldErrs, checkErrs...)
	}

	if len(fieldErrs) == 0 {
		return nil
	}

	if o.AbortEarly {
		fieldErrs = fieldErrs[:1]
	}

	raw := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		raw = append(raw, fe.raw)
	}

	if o.LogErrors {
		zerolog.Ctx(ctx).Debug().
			Strs("errors", raw).
			Str("payload", reflect.TypeOf(v).String()).
			Msg("validation failed")
	}

	appOpts := []apperror.Option{apperror.WithStatus(o.ErrorStatusCode)}
	if o.ErrorMessage != "" {
		appOpts = append(appOpts, apperror.WithMessage(o.ErrorMessage))
	}

	var details any = fieldErrs
	if !o.FormatErrors {
		details = raw
	}

	return apperror.New(apperror.UnprocessableEntity, appOpts...).
		WithMetadata(map[string]any{"errors": details})
}

func (e *Engine) runChecks(
	ctx context.Context,
	v any,
	failed []FieldError,
	abortEarly bool,
	trans ut.Translator,
) ([]FieldError, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}

	skip := make(map[string]bool, len(failed))
	for _, fe := range failed {
		skip[fe.Path] = true
	}

	var out []FieldError
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		names := sf.Tag.Get("check")
		if names == "" {
			continue
		}

		path := fieldName(sf)
		if skip[path] {
			continue
		}

		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.IsZero() {
			continue
		}

		for _, name := range strings.Split(names, ",") {
			rule, ok := e.rules[name]
			if !ok {
				return nil, fmt.Errorf("validation rule %q is not registered", name)
			}

			ok, err := rule(ctx, fv.Interface())
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return nil, errTimeout.WithCause(err)
				}
				return nil, fmt.Errorf("validation rule %q: %w", name, err)
			}
			if ok {
				continue
			}

			key := "validation." + name
			msg, _ := lookup(trans, key, path)
			if msg == "" {
				msg = path + " failed on the " + name + " rule"
			}
			out = append(out, FieldError{Path: path, Message: msg, Key: key, raw: path + ": " + key})
			if abortEarly {
				return out, nil
			}
			break
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, errTimeout.WithCause(ctx.Err())
	}

	return out, nil
}

func newFieldError(fe validator.FieldError, trans ut.Translator) FieldError {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}

	out := FieldError{
		Path:    path,
		Message: fe.Error(),
		Key:     "validation." + fe.Tag(),
		raw:     fe.Error(),
	}
	if trans != nil {
		out.Message = fe.Translate(trans)
	}

	if s, ok := suggestions[fe.Tag()]; ok {
		var params []string
		if s.withParam {
			params = []string{fe.Param()}
		}
		msg, _ := lookup(trans, s.key, params...)
		out.Suggestion = &Suggestion{Key: s.key, Message: msg, Params: params}
	}

	return out
}

type suggestion struct {
	key       string
	withParam bool
}

var suggestions = map[string]suggestion{
	"min":             {"validation.suggestion.min", true},
	"max":             {"validation.suggestion.max", true},
	"strong_password": {"validation.suggestion.strong_password", false},
	"eqfield":         {"validation.suggestion.eqfield", true},
	"email":           {"validation.suggestion.email", false},
}

func lookup(trans ut.Translator, key string, params ...string) (msg string, err error) {
	if trans == nil {
		return "", errors.New("no translator")
	}
	defer func() {
		if r := recover(); r != nil {
			msg, err = "", fmt.Errorf("translate %q: %v", key, r)
		}
	}()
	return trans.T(key, params...)
}

func fieldName(sf reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return sf.Name
}

func registerTranslations(v *validator.Validate, uni *ut.UniversalTranslator) error {
	defaults := map[string]func(*validator.Validate, ut.Translator) error{
		"en": en_translations.RegisterDefaultTranslations,
		"vi": vi_translations.RegisterDefaultTranslations,
	}

	for locale, register := range defaults {
		trans, ok := uni.GetTranslator(locale)
		if !ok {
			continue
		}
		if err := register(v, trans); err != nil {
			return fmt.Errorf("register %s validator translations: %w", locale, err)
		}

		for tag := range customValidators {
			key := "validation." + tag
			err := v.RegisterTranslation(tag, trans,
				func(ut.Translator) error { return nil },
				func(t ut.Translator, fe validator.FieldError) string {
					msg, err := lookup(t, key, fe.Field())
					if err != nil {
						return fe.Error()
					}
					return msg
				},
			)
			if err != nil {
				return fmt.Errorf("register %s translation for %s: %w", locale, tag, err)
			}
		}
	}

	return nil
}
