package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey string, from string) (*ResendMailer, error) {
	apiKey = strings.TrimSpace(apiKey)
	from = strings.TrimSpace(from)
	if apiKey == "" {
		return nil, fmt.Errorf("resend: %w", ErrMissingAPIKey)
	}
	if from == "" {
		return nil, fmt.Errorf("resend: %w", ErrMissingSender)
	}
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}, nil
}

func (mailer *ResendMailer) SendPasswordReset(ctx context.Context, to string, resetURL string) error {
	message, err := buildPasswordResetMessage(resetURL)
	if err != nil {
		return err
	}

	sent, err := mailer.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", senderName, mailer.from),
		To:      []string{to},
		Subject: message.Subject,
		Text:    message.Text,
		Html:    message.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return fmt.Errorf("resend send: %w", ErrDeliveryRejected)
	}
	return nil
}
