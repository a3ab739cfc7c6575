package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gedsejours/internal/app/commands"
	bookingapp "gedsejours/internal/app/handlers/booking"
	pricingapp "gedsejours/internal/app/handlers/pricingapp"
	stayapp "gedsejours/internal/app/handlers/stays"
	"gedsejours/internal/app/middleware"
	appoutbox "gedsejours/internal/app/outbox"
	"gedsejours/internal/app/ports"
	"gedsejours/internal/app/queries"
	"gedsejours/internal/app/uow"
	domainbooking "gedsejours/internal/domain/booking"
	domaincatalog "gedsejours/internal/domain/catalog"
	domainpricing "gedsejours/internal/domain/pricing"
	"gedsejours/internal/infra/broker/kafka"
	"gedsejours/internal/infra/config"
	"gedsejours/internal/infra/db/mongo"
	"gedsejours/internal/infra/enrichment"
	ginserver "gedsejours/internal/infra/http/gin"
	"gedsejours/internal/infra/obs"
	infraoutbox "gedsejours/internal/infra/outbox"
	"gedsejours/internal/infra/storage/memory"
	"gedsejours/internal/infra/storage/s3"
	"gedsejours/internal/infra/submission"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.stays != nil {
		if err := loadStayFixtures(ctx, cfg, app, logger); err != nil {
			logger.Warn("stay fixtures load failed", "error", err, "path", cfg.FixturesPath)
		}
	}

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		if app.producer != nil {
			_ = app.producer.Close()
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers     ginserver.Handlers
	stays        domaincatalog.Repository
	brochures    *s3.BrochureMirror
	producer     *kafka.Producer
	outboxWorker *infraoutbox.Worker
	ready        func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var app application

	var (
		uowFactory  uow.UoWFactory
		outboxStore appoutbox.Outbox
		stays       domaincatalog.Repository
		idStore     middleware.IdempotencyStore
		ready       = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return app, fmt.Errorf("mongo connect: %w", err)
		}
		stayRepo := mongo.NewStayRepository(client.DB)
		bookingRepo := mongo.NewBookingRepository(client.DB)
		uowFactory = mongo.Factory{DB: client.DB, StayRepo: stayRepo, BookingRepo: bookingRepo}
		stays = stayRepo
		idStore = mongo.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		store := infraoutbox.NewStore(client.DB)
		outboxStore = store
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return app, fmt.Errorf("kafka producer: %w", err)
			}
			app.producer = producer
			app.outboxWorker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("no kafka brokers configured, outbox events stay queued")
		}
	default:
		stayRepo := memory.NewStayRepository()
		bookingRepo := memory.NewBookingRepository()
		uowFactory = memory.Factory{StayRepo: stayRepo, BookingRepo: bookingRepo}
		stays = stayRepo
		outboxStore = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
	}
	app.stays = stays
	app.ready = ready

	var enrichmentPort ports.EnrichmentPort
	if cfg.EnrichmentURL != "" {
		enrichmentPort = &enrichment.Client{
			HTTP:     &http.Client{Timeout: cfg.EnrichmentTimeout},
			Endpoint: cfg.EnrichmentURL,
			Logger:   logger,
		}
	}

	var submitter domainbooking.Submitter
	if cfg.SubmissionURL != "" {
		submitter = &submission.Client{
			HTTP:     &http.Client{Timeout: cfg.SubmissionTimeout},
			Endpoint: cfg.SubmissionURL,
			Logger:   logger,
		}
	} else {
		logger.Warn("no submission endpoint configured, accepting bookings locally")
		submitter = &submission.LocalSubmitter{Stays: stays}
	}

	if cfg.S3Endpoint != "" {
		uploader, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("s3 uploader unavailable, brochures stay on the source site", "error", err)
		} else {
			app.brochures = &s3.BrochureMirror{Uploader: uploader, HTTP: http.DefaultClient, Logger: logger}
		}
	}

	calculator := domainpricing.NewCalculator(domainpricing.DefaultConfig())

	commandBus := commands.NewInMemoryBus()
	submitHandler := &bookingapp.SubmitBookingHandler{
		UoWFactory: uowFactory,
		Submitter:  submitter,
		Enrichment: enrichmentPort,
		Calculator: calculator,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, bookingapp.SubmitBookingCommand{}.Key(), submitHandler)
	commands.RegisterHandler(commandBus, bookingapp.UpdateBookingStatusCommand{}.Key(), &bookingapp.UpdateBookingStatusHandler{
		UoWFactory: uowFactory,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, stayapp.GetStayQuery{}.Key(), &stayapp.GetStayHandler{
		UoWFactory: uowFactory,
		Enrichment: enrichmentPort,
	})
	queries.RegisterHandler(queryBus, stayapp.SearchCatalogQuery{}.Key(), &stayapp.SearchCatalogHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, pricingapp.QuoteQuery{}.Key(), &pricingapp.QuoteHandler{
		UoWFactory: uowFactory,
		Enrichment: enrichmentPort,
		Calculator: calculator,
	})
	queries.RegisterHandler(queryBus, bookingapp.ListByStayQuery{}.Key(), &bookingapp.ListByStayHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Stay: ginserver.StayHandler{
			Queries: queryBusWithMiddleware,
		},
		Booking: ginserver.BookingHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
	}
	return app, nil
}

type stayFixture struct {
	ID           string           `json:"id"`
	Slug         string           `json:"slug"`
	SourceURL    string           `json:"source_url"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Geography    string           `json:"geography"`
	Period       string           `json:"period"`
	Themes       []string         `json:"themes"`
	DurationDays int              `json:"duration_days"`
	AgeMin       int              `json:"age_min"`
	AgeMax       int              `json:"age_max"`
	PriceFrom    *int             `json:"price_from"`
	ImageCover   string           `json:"image_cover"`
	BrochurePDF  string           `json:"brochure_pdf"`
	Published    *bool            `json:"published"`
	Sessions     []sessionFixture `json:"sessions"`
}

type sessionFixture struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	SeatsLeft int    `json:"seats_left"`
}

func loadStayFixtures(ctx context.Context, cfg config.Config, app application, logger *slog.Logger) error {
	data, err := os.ReadFile(cfg.FixturesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("stay fixtures file not found, skipping", "path", cfg.FixturesPath)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []stayFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		stay := &domaincatalog.Stay{
			ID:           domaincatalog.StayID(fx.ID),
			Slug:         fx.Slug,
			SourceURL:    fx.SourceURL,
			Title:        fx.Title,
			Description:  fx.Description,
			Geography:    fx.Geography,
			Period:       fx.Period,
			Themes:       fx.Themes,
			DurationDays: fx.DurationDays,
			AgeMin:       fx.AgeMin,
			AgeMax:       fx.AgeMax,
			PriceFrom:    fx.PriceFrom,
			ImageCover:   fx.ImageCover,
			Published:    fx.Published == nil || *fx.Published,
		}
		if fx.BrochurePDF != "" && app.brochures != nil {
			if url, err := app.brochures.Mirror(ctx, stay.ID, fx.BrochurePDF); err == nil {
				stay.BrochureURL = url
			} else {
				logger.Warn("brochure mirror failed", "stay_id", fx.ID, "error", err)
				stay.BrochureURL = fx.BrochurePDF
			}
		} else {
			stay.BrochureURL = fx.BrochurePDF
		}

		sessions := make([]domaincatalog.Session, 0, len(fx.Sessions))
		for _, sx := range fx.Sessions {
			start, startErr := parseFixtureDate(sx.StartDate)
			end, endErr := parseFixtureDate(sx.EndDate)
			if startErr != nil || endErr != nil {
				logger.Error("fixture session dates invalid", "stay_id", fx.ID, "session_id", sx.ID)
				continue
			}
			sessions = append(sessions, domaincatalog.Session{
				ID:        domaincatalog.SessionID(sx.ID),
				StayID:    stay.ID,
				StartDate: start,
				EndDate:   end,
				SeatsLeft: sx.SeatsLeft,
			})
		}

		if err := app.stays.Save(ctx, stay, sessions); err != nil {
			logger.Error("cannot store fixture stay", "stay_id", fx.ID, "error", err)
			continue
		}
		logger.Info("stay fixture imported", "stay_id", fx.ID, "sessions", len(sessions))
	}
	return nil
}

func parseFixtureDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", value)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
