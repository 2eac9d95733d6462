package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"
)

const (
	ProviderLog      = "log"
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"

	passwordResetSubject = "Reset your FitLife password"
	senderName           = "FitLife Support"
)

var (
	ErrMissingAPIKey    = errors.New("mail provider api key is required")
	ErrMissingSender    = errors.New("mail sender address is required")
	ErrUnknownProvider  = errors.New("unknown mail provider")
	ErrDeliveryRejected = errors.New("mail provider rejected the message")
)

// Mailer delivers account emails. Implementations must not retain resetURL.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, resetURL string) error
}

type Config struct {
	Provider       string
	From           string
	ResendAPIKey   string
	SendGridAPIKey string
	SendGridHost   string
}

func New(config Config, logger *log.Logger) (Mailer, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if provider == "" {
		provider = ProviderLog
	}

	switch provider {
	case ProviderLog:
		return NewLogMailer(logger), nil
	case ProviderResend:
		return NewResendMailer(config.ResendAPIKey, config.From)
	case ProviderSendGrid:
		return NewSendGridMailer(config.SendGridAPIKey, config.From, config.SendGridHost)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
}

var passwordResetHTML = template.Must(template.New("password_reset").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 500px;">
  <h2 style="color: #4f46e5;">Reset Your Password</h2>
  <p>You requested a password reset. Use the button below to set a new password. The link expires in 10 minutes.</p>
  <a href="{{.URL}}" style="background-color: #4f46e5; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
  <p style="margin-top: 20px; color: #888; font-size: 12px;">If you didn't request this, please ignore this email.</p>
</div>`))

type passwordResetMessage struct {
	Subject string
	Text    string
	HTML    string
}

func buildPasswordResetMessage(resetURL string) (passwordResetMessage, error) {
	var html bytes.Buffer
	if err := passwordResetHTML.Execute(&html, struct{ URL string }{URL: resetURL}); err != nil {
		return passwordResetMessage{}, fmt.Errorf("render password reset email: %w", err)
	}

	text := "You requested a password reset.\n\n" +
		"Open this link to set a new password (valid for 10 minutes):\n" + resetURL + "\n\n" +
		"If you didn't request this, please ignore this email."
	return passwordResetMessage{Subject: passwordResetSubject, Text: text, HTML: html.String()}, nil
}
