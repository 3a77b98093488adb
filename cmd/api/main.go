package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	config "github.com/anjiri1684/thinksync/configs"
	"github.com/anjiri1684/thinksync/database"
	"github.com/anjiri1684/thinksync/handlers"
	"github.com/anjiri1684/thinksync/jobs"
	"github.com/anjiri1684/thinksync/notifications"
	"github.com/anjiri1684/thinksync/payments"
	"github.com/anjiri1684/thinksync/routes"
	"github.com/anjiri1684/thinksync/services"
	"github.com/anjiri1684/thinksync/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := utils.NewLogger(settings.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	os.Exit(finish(zlog, run(settings, zlog)))
}

// finish flushes the logger and turns run's result into the exit code.
// os.Exit skips deferred calls, so the flush happens here.
func finish(log *zap.Logger, err error) int {
	code := 0
	if err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		code = 1
	}
	_ = log.Sync()
	return code
}

func run(settings *config.Settings, log *zap.Logger) error {
	schedule, err := cron.ParseStandard(settings.ReminderSchedule)
	if err != nil {
		return fmt.Errorf("parse reminder schedule: %w", err)
	}

	store, err := openStore(settings, log)
	if err != nil {
		return err
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.SeedAdmin(seedCtx, store, settings.AdminEmail, settings.AdminName, log); err != nil {
		log.Warn("Admin seeding failed", zap.Error(err))
	}
	cancel()

	notifier := notifications.NewEmailService(settings.BrevoAPIKey, settings.EmailSender, settings.EmailSenderName, log)

	deps := handlers.Deps{
		Store:           store,
		Tokens:          utils.NewTokenIssuer(settings.AccessTokenSecret, settings.TokenTTL, settings.IsProduction()),
		Payments:        paymentProvider(settings, log),
		PaymentCurrency: settings.PaymentCurrency,
		Notifier:        notifier,
		Log:             log,
	}
	if settings.CloudinaryURL != "" {
		media, err := services.NewMediaStore(settings.CloudinaryURL, settings.CloudinaryFolder, log)
		if err != nil {
			log.Warn("Media uploads disabled", zap.Error(err))
		} else {
			deps.Media = media
		}
	} else {
		log.Info("CLOUDINARY_URL not set, media uploads disabled")
	}
	h := handlers.New(deps)

	scheduler := cron.New()
	reminder := jobs.NewClassReminder(store.Bookings, notifier, schedule, log)
	scheduler.Schedule(reminder.Schedule(), reminder)
	scheduler.Start()

	app := fiber.New(fiber.Config{
		AppName:       "ThinkSync",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler(log),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(settings.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Setup(app, h, routes.NewGuards(deps.Tokens.Secret(), store.Users, log))

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server is running", zap.String("port", settings.Port), zap.String("env", settings.Environment))
		errCh <- app.Listen(":" + settings.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if err := store.Close(ctx); err != nil {
		log.Error("Store disconnect failed", zap.Error(err))
	}
	return serveErr
}

func openStore(settings *config.Settings, log *zap.Logger) (*database.Store, error) {
	if settings.DBDriver == "memory" {
		log.Warn("Using in-memory store, data is lost on restart")
		return database.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return database.ConnectMongo(ctx, settings.MongoURI, settings.DBName, log)
}

func paymentProvider(settings *config.Settings, log *zap.Logger) payments.IntentProvider {
	switch settings.PaymentProvider {
	case "paypal":
		if settings.PayPalClientID == "" || settings.PayPalClientSecret == "" {
			log.Warn("PayPal credentials missing, payment intents disabled")
			return nil
		}
		return payments.NewPayPalService(settings.PayPalAPIBase, settings.PayPalClientID, settings.PayPalClientSecret, log)
	default:
		if settings.StripeSecretKey == "" {
			log.Warn("STRIPE_SECRET_KEY missing, payment intents disabled")
			return nil
		}
		return payments.NewStripeService(settings.StripeAPIBase, settings.StripeSecretKey, log)
	}
}
