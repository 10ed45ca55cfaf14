package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sdkart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SendGridMailer sends transactional email through the SendGrid API
type SendGridMailer struct {
	client      *sendgrid.Client
	fromName    string
	fromAddress string
	logger      *zap.Logger
}

// NewSendGridMailer creates a new SendGridMailer from the mail configuration
func NewSendGridMailer(cfg config.MailConfig, logger *zap.Logger) (*SendGridMailer, error) {
	if cfg.SendGridKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("mail from address is empty")
	}
	return &SendGridMailer{
		client:      sendgrid.NewSendClient(cfg.SendGridKey),
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		logger:      logger,
	}, nil
}

// Send delivers a plain-text email to a single recipient
func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	from := mail.NewEmail(m.fromName, m.fromAddress)
	recipient := mail.NewEmail("", to)
	htmlContent := fmt.Sprintf("<pre>%s</pre>", body)
	message := mail.NewSingleEmail(from, subject, recipient, body, htmlContent)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	m.logger.Debug("mail sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("status", response.StatusCode))
	return nil
}
