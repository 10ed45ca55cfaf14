package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer logs outgoing mail instead of delivering it. Used when mail
// delivery is disabled, typically in development and tests.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("mail suppressed (delivery disabled)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	return nil
}
