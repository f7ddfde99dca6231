package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/config"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/handler"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/social-api/shared/auth"
	"github.com/vasapolrittideah/social-api/shared/i18n"
	"github.com/vasapolrittideah/social-api/shared/logger"
	"github.com/vasapolrittideah/social-api/shared/mailer"
	"github.com/vasapolrittideah/social-api/shared/provider"
	"github.com/vasapolrittideah/social-api/shared/storage"
	"github.com/vasapolrittideah/social-api/shared/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("social service stopped")
	}
}

func run(cfg *config.Config, log *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := i18n.New(cfg.App.DefaultLocale)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	engine, err := validation.New(bundle, cfg.App.OperationTimeout, log)
	if err != nil {
		return fmt.Errorf("create validator: %w", err)
	}

	repos, closeRepos, err := openRepositories(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeRepos()

	jwtAuth, err := auth.NewJWTAuthenticator(cfg.Auth.Issuer, cfg.Auth.Issuer, cfg.Auth.Algorithm)
	if err != nil {
		return fmt.Errorf("create jwt authenticator: %w", err)
	}

	mail, closeMail, err := openMailSender(cfg.Mail, log)
	if err != nil {
		return err
	}
	defer closeMail()

	var google provider.GoogleVerifier
	if cfg.OAuth.Enabled() {
		google = provider.NewGoogleOAuthProvider(cfg.OAuth.GoogleClientID, &http.Client{Timeout: cfg.App.OperationTimeout})
	} else {
		log.Info().Msg("google sign-in disabled")
	}

	var presigner storage.Presigner
	if cfg.Storage.Enabled() {
		s3Presigner, err := storage.NewS3Presigner(ctx, storage.Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			ExpiresIn:       cfg.Storage.PresignExpiresIn,
		})
		if err != nil {
			return fmt.Errorf("create s3 presigner: %w", err)
		}
		presigner = s3Presigner
	} else {
		log.Info().Msg("media storage disabled")
	}

	tokens := usecase.NewTokenUsecase(jwtAuth, repos.RefreshTokens, cfg.Auth, cfg.App.OperationTimeout)
	authUsecase := usecase.NewAuthUsecase(repos.Users, repos.Identities, tokens, mail, google, usecase.AuthOptions{
		ClientURL:             cfg.App.ClientURL,
		RevokeSessionsOnReset: cfg.Auth.RevokeSessionsOnReset,
	}, log)

	router := handler.NewRouter(handler.Dependencies{
		Config:    cfg,
		Logger:    log,
		Bundle:    bundle,
		Validator: engine,
		Tokens:    tokens,
		Auth:      authUsecase,
		Users:     usecase.NewUserUsecase(repos.Users),
		Follow:    usecase.NewFollowUsecase(repos.Users, repos.Followers, log),
		Media:     usecase.NewMediaUsecase(presigner),
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("prefix", cfg.App.Prefix).Msg("social service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func openRepositories(
	ctx context.Context,
	cfg config.DatabaseConfig,
	log *zerolog.Logger,
) (repository.Repositories, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return repository.NewMemoryRepositories(), func() {}, nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return repository.Repositories{}, nil, fmt.Errorf("connect mongo: %w", err)
	}

	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongo")
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnect()
		return repository.Repositories{}, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Name)
	useTransactions := cfg.UseTransactions
	if useTransactions {
		ok, err := repository.SupportsTransactions(pingCtx, db)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("could not check transaction support, rotating refresh tokens without transactions")
			useTransactions = false
		case !ok:
			log.Warn().Msg("mongo is not a replica set, rotating refresh tokens without transactions")
			useTransactions = false
		}
	}

	log.Info().Str("database", cfg.Name).Bool("transactions", useTransactions).Msg("connected to mongo")
	return repository.NewMongoRepositories(ctx, log, db, useTransactions), disconnect, nil
}

func openMailSender(cfg config.MailConfig, log *zerolog.Logger) (mailer.Sender, func(), error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		m, err := mailer.NewMailer(smtpConfig(cfg))
		if err != nil {
			return nil, nil, fmt.Errorf("create mailer: %w", err)
		}
		return m, func() {}, nil
	case config.TransportAMQP:
		q, err := mailer.NewQueue(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("open mail queue: %w", err)
		}
		log.Info().Str("queue", cfg.AMQPQueue).Msg("emails are published to the mail queue")
		return q, q.Close, nil
	default:
		log.Warn().Msg("mail transport disabled, emails are only logged")
		return mailer.NewLogSender(log), func() {}, nil
	}
}

func smtpConfig(cfg config.MailConfig) mailer.Config {
	return mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
}
