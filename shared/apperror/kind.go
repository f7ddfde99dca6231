package apperror

import "net/http"

// Kind identifies one member of the closed set of API error kinds.
type Kind uint8

const (
	BadRequest Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Conflict
	Gone
	UnsupportedMediaType
	TooEarly
	UnprocessableEntity
	RateLimited
	InternalServer
	NotImplemented
	BadGateway
	ServiceUnavailable
	GatewayTimeout
	InsufficientStorage
)

type kindInfo struct {
	status  int
	code    string
	key     string
	message string
}

var kinds = map[Kind]kindInfo{
	BadRequest:           {http.StatusBadRequest, "BAD_REQUEST", "error.bad_request", "Bad request"},
	Unauthorized:         {http.StatusUnauthorized, "UNAUTHORIZED", "error.unauthorized", "Unauthorized"},
	Forbidden:            {http.StatusForbidden, "FORBIDDEN", "error.forbidden", "Forbidden"},
	NotFound:             {http.StatusNotFound, "NOT_FOUND", "error.not_found", "Resource not found"},
	Conflict:             {http.StatusConflict, "CONFLICT", "error.conflict", "Resource already exists"},
	Gone:                 {http.StatusGone, "GONE", "error.gone", "Resource is no longer available"},
	UnsupportedMediaType: {http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "error.unsupported_media_type", "Unsupported media type"},
	TooEarly:             {http.StatusTooEarly, "TOO_EARLY", "error.too_early", "Request was sent too early"},
	UnprocessableEntity:  {http.StatusUnprocessableEntity, "VALIDATION_ERROR", "error.validation", "Validation failed"},
	RateLimited:          {http.StatusTooManyRequests, "RATE_LIMITED", "error.rate_limited", "Too many requests"},
	InternalServer:       {http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error.internal", "Internal server error"},
	NotImplemented:       {http.StatusNotImplemented, "NOT_IMPLEMENTED", "error.not_implemented", "Not implemented"},
	BadGateway:           {http.StatusBadGateway, "BAD_GATEWAY", "error.bad_gateway", "Bad gateway"},
	ServiceUnavailable:   {http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "error.service_unavailable", "Service unavailable"},
	GatewayTimeout:       {http.StatusGatewayTimeout, "GATEWAY_TIMEOUT", "error.gateway_timeout", "Gateway timeout"},
	InsufficientStorage:  {http.StatusInsufficientStorage, "INSUFFICIENT_STORAGE", "error.insufficient_storage", "Insufficient storage"},
}

// Status returns the HTTP status code bound to the kind.
func (k Kind) Status() int {
	if info, ok := kinds[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Code returns the canonical machine-readable code of the kind.
func (k Kind) Code() string {
	if info, ok := kinds[k]; ok {
		return info.code
	}
	return kinds[InternalServer].code
}

// Key returns the canonical translation key of the kind.
func (k Kind) Key() string {
	if info, ok := kinds[k]; ok {
		return info.key
	}
	return kinds[InternalServer].key
}

// DefaultMessage returns the generic English message of the kind.
func (k Kind) DefaultMessage() string {
	if info, ok := kinds[k]; ok {
		return info.message
	}
	return kinds[InternalServer].message
}

// IsServer reports whether the kind is a 5xx error.
func (k Kind) IsServer() bool {
	return k.Status() >= http.StatusInternalServerError
}

func (k Kind) String() string {
	return k.Code()
}
