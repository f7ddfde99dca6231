// Command mailworker drains the mail queue and delivers each email over SMTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/config"
	"github.com/vasapolrittideah/social-api/shared/logger"
	"github.com/vasapolrittideah/social-api/shared/mailer"
)

func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)

	smtp, err := mailer.NewMailer(mailer.Config{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Username: cfg.Mail.SMTPUsername,
		Password: cfg.Mail.SMTPPassword,
		From:     cfg.Mail.SMTPFrom,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer")
	}

	queue, err := mailer.NewQueue(cfg.Mail.AMQPURL, cfg.Mail.AMQPQueue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open mail queue")
	}
	defer queue.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("queue", cfg.Mail.AMQPQueue).Msg("mail worker started")
	if err := queue.Consume(ctx, smtp, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("mail worker stopped")
		return
	}
	log.Info().Msg("mail worker stopped")
}
