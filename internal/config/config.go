package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/mailer"
	"github.com/terraincognita07/fitlife/internal/providers"
)

const (
	defaultPort      = "8080"
	defaultClientURL = "http://localhost:5173"
	minSecretKeyLen  = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port         string
	SecretKey    string
	Location     *time.Location
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	CookieSecure bool
	ClientURL    string

	Mail mailer.Config

	FatSecretClientID     string
	FatSecretClientSecret string
	APINinjasKey          string
	GroqAPIKey            string
	GroqModel             string
	ProviderTimeout       time.Duration
}

// Load reads an optional .env file from the working directory, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	location, err := resolveLocation()
	if err != nil {
		return Config{}, err
	}
	driver, err := resolveDBDriver()
	if err != nil {
		return Config{}, err
	}
	cookieSecure, err := parseBoolEnv("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}
	timeout, err := parseDurationEnv("PROVIDER_TIMEOUT", providers.DefaultTimeout)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:         port,
		SecretKey:    secretKey,
		Location:     location,
		DBDriver:     driver,
		DBPath:       getEnv("DB_PATH", filepath.Join("data", "fitlife.db")),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CookieSecure: cookieSecure,
		ClientURL:    strings.TrimRight(getEnv("CLIENT_URL", defaultClientURL), "/"),
		Mail: mailer.Config{
			Provider:       getEnv("MAIL_PROVIDER", mailer.ProviderLog),
			From:           os.Getenv("MAIL_FROM"),
			ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		},
		FatSecretClientID:     os.Getenv("FATSECRET_CLIENT_ID"),
		FatSecretClientSecret: os.Getenv("FATSECRET_CLIENT_SECRET"),
		APINinjasKey:          os.Getenv("API_NINJAS_KEY"),
		GroqAPIKey:            os.Getenv("GROQ_API_KEY"),
		GroqModel:             getEnv("GROQ_MODEL", providers.DefaultGroqModel),
		ProviderTimeout:       timeout,
	}
	if cfg.DBDriver == db.DriverPostgres && cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	return cfg, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLen {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLen)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation() (*time.Location, error) {
	name := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}

func resolveDBDriver() (string, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", db.DriverSQLite))
	switch driver {
	case db.DriverSQLite, db.DriverPostgres:
		return driver, nil
	default:
		return "", fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, driver)
	}
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
