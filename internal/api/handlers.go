package api

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/fitlife/internal/mailer"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Mailer == nil {
		options.Mailer = mailer.NewLogMailer(log.Default())
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(options.SecretKey),
		location:     options.Location,
		cookieSecure: options.CookieSecure,
		clientURL:    strings.TrimRight(strings.TrimSpace(options.ClientURL), "/"),
		now:          time.Now,
		mailer:       options.Mailer,
		foods:        options.Foods,
		activities:   options.Activities,
		coach:        options.Coach,
		authLimiter:  newAttemptLimiter(),
		chatLimiter:  newChatLimiter(chatRequestsPerMinute, chatBurst),
	}
	return handler.withDependencies(database), nil
}
