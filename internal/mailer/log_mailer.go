package mailer

import (
	"context"
	"log"
)

// LogMailer prints reset links to the server log for local development.
type LogMailer struct {
	logger *log.Logger
}

func NewLogMailer(logger *log.Logger) *LogMailer {
	if logger == nil {
		logger = log.Default()
	}
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) SendPasswordReset(_ context.Context, to string, resetURL string) error {
	mailer.logger.Printf("password reset link for %s: %s", to, resetURL)
	return nil
}
