package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridSendEndpoint = "/v3/mail/send"

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridMailer targets the public API unless host overrides it.
func NewSendGridMailer(apiKey string, from string, host string) (*SendGridMailer, error) {
	apiKey = strings.TrimSpace(apiKey)
	from = strings.TrimSpace(from)
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid: %w", ErrMissingAPIKey)
	}
	if from == "" {
		return nil, fmt.Errorf("sendgrid: %w", ErrMissingSender)
	}

	request := sendgrid.GetRequest(apiKey, sendGridSendEndpoint, strings.TrimSpace(host))
	request.Method = "POST"
	return &SendGridMailer{
		client: &sendgrid.Client{Request: request},
		from:   mail.NewEmail(senderName, from),
	}, nil
}

func (mailer *SendGridMailer) SendPasswordReset(ctx context.Context, to string, resetURL string) error {
	message, err := buildPasswordResetMessage(resetURL)
	if err != nil {
		return err
	}

	email := mail.NewSingleEmail(mailer.from, message.Subject, mail.NewEmail("", to), message.Text, message.HTML)
	response, err := mailer.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("sendgrid send: %w (status %d)", ErrDeliveryRejected, response.StatusCode)
	}
	return nil
}
