package payload

import (
	"time"
)

type RegisterRequest struct {
	Name            string    `json:"name"             mod:"trim"       validate:"required,min=1,max=100"`
	Email           string    `json:"email"            mod:"trim,lcase" validate:"required,email"`
	Password        string    `json:"password"                          validate:"required,min=6,max=50,strong_password"`
	ConfirmPassword string    `json:"confirmPassword"                   validate:"required,eqfield=Password"`
	DateOfBirth     time.Time `json:"date_of_birth"                     validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    mod:"trim,lcase" validate:"required,email"`
	Password string `json:"password"                  validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" mod:"trim" validate:"required,jwt"`
}

type VerifyEmailRequest struct {
	EmailVerifyToken string `json:"email_verify_token" mod:"trim" validate:"required,jwt"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" mod:"trim,lcase" validate:"required,email"`
}

type VerifyForgotPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token" mod:"trim" validate:"required,jwt"`
}

type ResetPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token" mod:"trim" validate:"required,jwt"`
	Password            string `json:"password"                         validate:"required,min=6,max=50,strong_password"`
	ConfirmPassword     string `json:"confirmPassword"                  validate:"required,eqfield=Password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"     validate:"required"`
	Password        string `json:"password"         validate:"required,min=6,max=50,strong_password,nefield=OldPassword"`
	ConfirmPassword string `json:"confirmPassword"  validate:"required,eqfield=Password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" mod:"trim" validate:"required"`
}

type GoogleLoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	NewUser      bool   `json:"newUser"`
}
