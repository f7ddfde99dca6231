// Package config loads the service configuration from the environment.
// It is parsed and validated once at startup and treated as read-only after.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMongo  = "mongo"
	DriverMemory = "memory"

	TransportNone = "none"
	TransportSMTP = "smtp"
	TransportAMQP = "amqp"
)

// Config is the complete service configuration.
type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Database DatabaseConfig
	OAuth    OAuthConfig
	Storage  StorageConfig
	Mail     MailConfig
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Env              string        `env:"APP_ENV"               envDefault:"development" validate:"oneof=development production"`
	Host             string        `env:"APP_HOST"              envDefault:"0.0.0.0"`
	Port             int           `env:"APP_PORT"              envDefault:"4000"        validate:"min=1,max=65535"`
	Prefix           string        `env:"APP_PREFIX"            envDefault:"/api"`
	CORSOrigins      []string      `env:"APP_CORS_ORIGINS"      envDefault:"*"           envSeparator:","`
	RateLimitWindow  time.Duration `env:"APP_RATE_LIMIT_WINDOW" envDefault:"15m"         validate:"gt=0"`
	RateLimitMax     int           `env:"APP_RATE_LIMIT_MAX"    envDefault:"100"         validate:"gt=0"`
	DefaultLocale    string        `env:"APP_DEFAULT_LOCALE"    envDefault:"en"          validate:"oneof=en vi"`
	ClientURL        string        `env:"APP_CLIENT_URL"        envDefault:"http://localhost:3000" validate:"url"`
	LogLevel         string        `env:"APP_LOG_LEVEL"         envDefault:"info"        validate:"oneof=trace debug info warn error"`
	OperationTimeout time.Duration `env:"APP_OPERATION_TIMEOUT" envDefault:"5s"          validate:"gt=0"`
	ShutdownTimeout  time.Duration `env:"APP_SHUTDOWN_TIMEOUT"  envDefault:"10s"         validate:"gt=0"`
}

// Addr returns the listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds the secret and expiry of each token kind.
type AuthConfig struct {
	Algorithm                    string        `env:"JWT_ALGORITHM"                    envDefault:"HS256" validate:"oneof=HS256 HS384 HS512"`
	Issuer                       string        `env:"JWT_ISSUER"                       envDefault:"social-api"`
	AccessTokenSecret            string        `env:"JWT_SECRET_ACCESS_TOKEN,required,notEmpty"`
	RefreshTokenSecret           string        `env:"JWT_SECRET_REFRESH_TOKEN,required,notEmpty"`
	EmailVerifyTokenSecret       string        `env:"JWT_SECRET_EMAIL_VERIFY_TOKEN,required,notEmpty"`
	ForgotPasswordTokenSecret    string        `env:"JWT_SECRET_FORGOT_PASSWORD_TOKEN,required,notEmpty"`
	AccessTokenExpiresIn         time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN"          envDefault:"15m"   validate:"gt=0"`
	RefreshTokenExpiresIn        time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN"         envDefault:"2400h" validate:"gt=0"`
	EmailVerifyTokenExpiresIn    time.Duration `env:"EMAIL_VERIFY_TOKEN_EXPIRES_IN"    envDefault:"168h"  validate:"gt=0"`
	ForgotPasswordTokenExpiresIn time.Duration `env:"FORGOT_PASSWORD_TOKEN_EXPIRES_IN" envDefault:"168h"  validate:"gt=0"`
	RevokeSessionsOnReset        bool          `env:"AUTH_REVOKE_SESSIONS_ON_RESET"    envDefault:"true"`
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER"           envDefault:"mongo" validate:"oneof=mongo memory"`
	URI             string        `env:"DB_URI"              validate:"required_if=Driver mongo"`
	Name            string        `env:"DB_NAME"             envDefault:"social"`
	UseTransactions bool          `env:"DB_USE_TRANSACTIONS" envDefault:"false"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT"  envDefault:"10s" validate:"gt=0"`
}

// OAuthConfig holds third-party sign-in settings. Google sign-in is disabled
// when GoogleClientID is empty.
type OAuthConfig struct {
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
}

// Enabled reports whether Google sign-in is configured.
func (c OAuthConfig) Enabled() bool {
	return c.GoogleClientID != ""
}

// StorageConfig holds S3-compatible object storage settings. Media uploads
// are unavailable when Bucket is empty.
type StorageConfig struct {
	Bucket           string        `env:"STORAGE_BUCKET"`
	Region           string        `env:"STORAGE_REGION"             envDefault:"auto"`
	Endpoint         string        `env:"STORAGE_ENDPOINT"           validate:"omitempty,url"`
	AccessKeyID      string        `env:"STORAGE_ACCESS_KEY_ID"      validate:"required_with=Bucket"`
	SecretAccessKey  string        `env:"STORAGE_SECRET_ACCESS_KEY"  validate:"required_with=Bucket"`
	PresignExpiresIn time.Duration `env:"STORAGE_PRESIGN_EXPIRES_IN" envDefault:"15m" validate:"gt=0"`
}

// Enabled reports whether object storage is configured.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

// MailConfig selects how emails leave the service.
type MailConfig struct {
	Transport    string `env:"MAIL_TRANSPORT"  envDefault:"none" validate:"oneof=none smtp amqp"`
	SMTPHost     string `env:"SMTP_HOST"       validate:"required_if=Transport smtp"`
	SMTPPort     int    `env:"SMTP_PORT"       envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"       validate:"required_if=Transport smtp"`
	AMQPURL      string `env:"AMQP_URL"        validate:"required_if=Transport amqp"`
	AMQPQueue    string `env:"AMQP_MAIL_QUEUE" envDefault:"mails"`
}

// Load parses and validates the process environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return finish(&cfg)
}

// LoadFromMap parses and validates the given variables instead of the
// process environment.
func LoadFromMap(vars map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return finish(&cfg)
}

// WorkerConfig is the subset of the configuration read by the mail worker.
type WorkerConfig struct {
	App  AppConfig
	Mail MailConfig
}

// LoadWorker parses and validates the mail worker configuration.
func LoadWorker() (*WorkerConfig, error) {
	cfg, err := env.ParseAs[WorkerConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return finish(&cfg)
}

func finish[T any](cfg *T) (*T, error) {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
