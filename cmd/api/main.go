// @title Ticket Check-in API
// @version 1.0
// @description Validates scanned ticket QR codes and admits each ticket at most once.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"ticketcheckin/config"
	_ "ticketcheckin/docs"
	"ticketcheckin/internal/adapters/auth"
	"ticketcheckin/internal/adapters/email"
	"ticketcheckin/internal/adapters/events"
	"ticketcheckin/internal/adapters/qrtoken"
	"ticketcheckin/internal/adapters/ratelimit"
	"ticketcheckin/internal/clock"
	deliveryhttp "ticketcheckin/internal/delivery/http"
	"ticketcheckin/internal/delivery/http/controllers"
	"ticketcheckin/internal/delivery/http/middleware"
	"ticketcheckin/internal/domain"
	"ticketcheckin/internal/repository/postgres"
	"ticketcheckin/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		return err
	}

	signer, err := qrtoken.NewSigner([]byte(cfg.QRSigningSecret))
	if err != nil {
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,

			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	publisher := events.NewNoopPublisher(logger)
	if cfg.NATSUrl != "" {
		if publisher, err = events.NewNATSPublisher(cfg.NATSUrl, logger); err != nil {
			return err
		}
	}
	defer publisher.Close()

	var limiter domain.RateLimiter = ratelimit.NewNoopLimiter()
	if cfg.RedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.ScanRateLimit, time.Minute)
	}

	ticketService := services.NewTicketValidationService(
		qrtoken.NewCodec(),
		signer,
		postgres.NewTicketRepository(db),
		clock.NewSystem(),
		publisher,
		emailService,
		logger,
		cfg.RequestTimeout,
	)

	mux := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:           logger,
		TokenVerifier:    auth.NewJWTVerifier(cfg.JWTSecret),
		RateLimiter:      limiter,
		TicketController: controllers.NewTicketValidationController(logger, ticketService),
		HealthController: controllers.NewHealthController(logger, db),
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx, server, ticketService, logger)
	})
	return g.Wait()
}
