package usecase

import (
	ae "github.com/vasapolrittideah/social-api/shared/apperror"
)

var (
	ErrInvalidCredentials = ae.New(ae.Unauthorized,
		ae.WithCode("INVALID_CREDENTIALS"), ae.WithKey("auth.invalid_credentials"))
	ErrEmailAlreadyExists = ae.New(ae.Conflict,
		ae.WithKey("auth.email_already_exists"))
	ErrEmailAlreadyVerified = ae.New(ae.Conflict,
		ae.WithCode("EMAIL_ALREADY_VERIFIED"), ae.WithKey("auth.email_already_verified"))
	ErrEmailVerifyTokenInvalid = ae.New(ae.Unauthorized,
		ae.WithCode("EMAIL_VERIFY_TOKEN_INVALID"), ae.WithKey("auth.email_verify_token_invalid"))
	ErrForgotPasswordTokenInvalid = ae.New(ae.Unauthorized,
		ae.WithCode("FORGOT_PASSWORD_TOKEN_INVALID"), ae.WithKey("auth.forgot_password_token_invalid"))
	ErrOldPasswordIncorrect = ae.New(ae.Unauthorized,
		ae.WithCode("OLD_PASSWORD_INCORRECT"), ae.WithKey("auth.old_password_incorrect"))
	ErrUserNotVerified = ae.New(ae.Forbidden,
		ae.WithCode("USER_NOT_VERIFIED"), ae.WithKey("auth.user_not_verified"))
	ErrUserBanned = ae.New(ae.Forbidden,
		ae.WithCode("USER_BANNED"), ae.WithKey("auth.user_banned"))
	ErrOAuthDisabled = ae.New(ae.NotImplemented,
		ae.WithCode("OAUTH_DISABLED"), ae.WithKey("auth.oauth_disabled"))
	ErrGoogleTokenInvalid = ae.New(ae.Unauthorized,
		ae.WithCode("GOOGLE_TOKEN_INVALID"), ae.WithKey("auth.google_token_invalid"))
	ErrGoogleEmailUnverified = ae.New(ae.Forbidden,
		ae.WithCode("GOOGLE_EMAIL_UNVERIFIED"), ae.WithKey("auth.google_email_unverified"))
)

// Token verification failures.
var (
	ErrTokenExpired = ae.New(ae.Unauthorized,
		ae.WithCode("TOKEN_EXPIRED"), ae.WithKey("auth.token_expired"))
	ErrTokenMalformed = ae.New(ae.Unauthorized,
		ae.WithCode("TOKEN_MALFORMED"), ae.WithKey("auth.token_malformed"))
	ErrTokenNotYetValid = ae.New(ae.Unauthorized,
		ae.WithCode("TOKEN_NOT_YET_VALID"), ae.WithKey("auth.token_not_yet_valid"))
	ErrTokenRevoked = ae.New(ae.Unauthorized,
		ae.WithCode("TOKEN_REVOKED"), ae.WithKey("auth.token_revoked"))
	ErrAccessTokenRequired = ae.New(ae.Unauthorized,
		ae.WithCode("ACCESS_TOKEN_REQUIRED"), ae.WithKey("auth.access_token_required"))
	ErrTokenUserMismatch = ae.New(ae.Unauthorized,
		ae.WithCode("TOKEN_USER_MISMATCH"), ae.WithKey("auth.token_user_mismatch"))
)

var (
	ErrUserNotFound = ae.New(ae.NotFound,
		ae.WithCode("USER_NOT_FOUND"), ae.WithKey("user.not_found"))
	ErrUsernameTaken = ae.New(ae.Conflict,
		ae.WithCode("USERNAME_TAKEN"), ae.WithKey("validation.unique_username", "username"))
	ErrCannotFollowSelf = ae.New(ae.BadRequest,
		ae.WithCode("CANNOT_FOLLOW_SELF"), ae.WithKey("follow.cannot_follow_self"))
	ErrUnsupportedMediaType = ae.New(ae.UnsupportedMediaType,
		ae.WithKey("media.unsupported_type"))
	ErrStorageUnavailable = ae.New(ae.ServiceUnavailable,
		ae.WithCode("STORAGE_UNAVAILABLE"), ae.WithKey("media.storage_unavailable"))
)
