package workers

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers password recovery messages. The default implementation
// writes them to the log; a real SMTP sender can be dropped in without
// touching the task handler.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer writes recovery messages to the structured log instead of
// sending mail. Useful for development and for deployments where mail
// goes out through a separate relay.
type LogMailer struct {
	Logger zerolog.Logger
}

func (m LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.Logger.Info().
		Str("email", email).
		Str("token", token).
		Msg("Password recovery message (log delivery)")
	return nil
}
