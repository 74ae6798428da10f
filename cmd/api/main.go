package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/meridianfx/enquiries-api/cmd/mainconfig"
	"github.com/meridianfx/enquiries-api/internal/api/router"
	"github.com/meridianfx/enquiries-api/internal/archive"
	appconfig "github.com/meridianfx/enquiries-api/internal/config"
	"github.com/meridianfx/enquiries-api/internal/countries"
	"github.com/meridianfx/enquiries-api/internal/enquiries"
	"github.com/meridianfx/enquiries-api/internal/notify"
	"github.com/meridianfx/enquiries-api/internal/observability/metrics"
	"github.com/meridianfx/enquiries-api/internal/triage"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

func main() {
	// Load .env in local development; ignore if absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting enquiries API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"collection", cfg.EnquiriesCollection,
	)

	registry := prometheus.NewRegistry()
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	// Persistence: DynamoDB in deployed environments, in-memory when no
	// AWS endpoint or credentials are wired (local development).
	var store enquiries.Store
	var exporter *archive.Exporter
	var triagePublisher enquiries.TriagePublisher
	var sesClient *sesv2.Client

	useAWS := cfg.Env != "development" || cfg.AWSEndpointOverride != ""
	if useAWS {
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		store = enquiries.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), logger)
		if cfg.ExportBucket != "" {
			exporter = archive.NewExporter(s3.NewFromConfig(awsCfg), cfg.ExportBucket, logger)
		}
		if cfg.TriageQueueURL != "" {
			queue := triage.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.TriageQueueURL)
			triagePublisher = triage.NewPublisher(queue, logger)
		}
		sesClient = sesv2.NewFromConfig(awsCfg)
	} else {
		logger.Warn("no AWS wiring configured, using in-memory store")
		store = enquiries.NewMemoryStore()
	}

	// Cross-client dedupe is optional; without Redis the per-session
	// in-flight guard is the only protection.
	var dedupe *enquiries.DedupeGuard
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		dedupe = enquiries.NewDedupeGuard(redis.NewClient(opts), cfg.DedupeTTL, logger)
	}

	notifier := buildNotifier(cfg, sesClient, logger)

	service := enquiries.NewService(store, cfg.EnquiriesCollection, enquiries.ServiceDeps{
		Dedupe:  dedupe,
		Triage:  triagePublisher,
		Notify:  notifier,
		Metrics: submissionMetrics,
	}, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		EnquiriesHandler:   enquiries.NewHandler(service, cfg.DefaultDialCode, logger),
		CountriesHandler:   countries.NewHandler(logger),
		AdminHandler:       enquiries.NewAdminHandler(store, cfg.EnquiriesCollection, exporter, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildNotifier picks the email transport for sales notifications based
// on EMAIL_PROVIDER. Returns nil (fan-out disabled) when no inbox or
// provider is configured.
func buildNotifier(cfg *appconfig.Config, sesClient *sesv2.Client, logger *logging.Logger) enquiries.Notifier {
	if cfg.SalesInbox == "" {
		return nil
	}

	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sg == nil {
			logger.Warn("sendgrid selected but SENDGRID_API_KEY is empty, sales notifications disabled")
			return nil
		}
		sender = sg
	case "ses":
		ses := notify.NewSESSender(sesClient, notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if ses == nil {
			logger.Warn("ses selected but no AWS client available, sales notifications disabled")
			return nil
		}
		sender = ses
	case "stub":
		sender = notify.NewStubEmailSender(logger)
	default:
		return nil
	}

	return notify.NewService(sender, cfg.SalesInbox, logger)
}
