package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/fitlife/internal/api"
	"github.com/terraincognita07/fitlife/internal/cli"
	"github.com/terraincognita07/fitlife/internal/config"
	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/mailer"
	"github.com/terraincognita07/fitlife/internal/providers"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	time.Local = cfg.Location

	database, err := db.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], database); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	mail, err := mailer.New(cfg.Mail, log.Default())
	if err != nil {
		log.Fatalf("mailer init failed: %v", err)
	}

	options := handlerOptions(cfg)
	options.Mailer = mail
	handler, err := api.NewHandler(database, options)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := newApp(handler, cfg.ClientURL)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("FitLife listening on http://0.0.0.0:%s (db: %s, mail: %s, tz: %s)", cfg.Port, cfg.DBDriver, cfg.Mail.Provider, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(args []string, database *gorm.DB) error {
	switch args[0] {
	case "reset-password":
		if len(args) != 2 {
			return errors.New("usage: fitlife reset-password <email>")
		}
		prompt := cli.TerminalPasswordPrompt(os.Stdin, os.Stdout)
		return cli.RunResetPasswordCommand(database, args[1], prompt, os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func handlerOptions(cfg config.Config) api.Options {
	options := api.Options{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		ClientURL:    cfg.ClientURL,
	}

	httpClient := providers.NewHTTPClient(cfg.ProviderTimeout)
	if cfg.FatSecretClientID != "" && cfg.FatSecretClientSecret != "" {
		options.Foods = providers.NewFatSecretClient(providers.FatSecretConfig{
			ClientID:     cfg.FatSecretClientID,
			ClientSecret: cfg.FatSecretClientSecret,
		}, httpClient)
	} else {
		log.Printf("FatSecret credentials missing, food search disabled")
	}
	if cfg.APINinjasKey != "" {
		options.Activities = providers.NewAPINinjasClient(cfg.APINinjasKey, "", httpClient)
	} else {
		log.Printf("API Ninjas key missing, activity search disabled")
	}
	if cfg.GroqAPIKey != "" {
		options.Coach = providers.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, "", httpClient)
	} else {
		log.Printf("Groq key missing, AI coach disabled")
	}
	return options
}

func newApp(handler *api.Handler, clientURL string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "FitLife",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     clientURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api.RegisterRoutes(app, handler)
	return app
}
