package workers

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
	"github.com/courtly-dev/courtly/internal/tasks"
)

// HandlePasswordReset delivers a recovery message for an outstanding
// reset token. Tokens that were already used or purged are skipped
// without retrying.
func HandlePasswordReset(ctx context.Context, t *asynq.Task, db *gorm.DB, mailer Mailer, logger zerolog.Logger) error {
	payload, err := tasks.ParsePasswordResetPayload(t)
	if err != nil {
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	var reset models.PasswordReset
	err = db.Where("usuario_id = ? AND token = ? AND used_at IS NULL", payload.UsuarioID, payload.Token).
		First(&reset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Warn().
				Uint("usuario_id", payload.UsuarioID).
				Msg("Reset token no longer outstanding - skipping delivery")
			return nil
		}
		return fmt.Errorf("failed to load reset token: %w", err)
	}

	if err := mailer.SendPasswordReset(ctx, payload.Email, payload.Token); err != nil {
		logger.Error().
			Err(err).
			Uint("usuario_id", payload.UsuarioID).
			Msg("Failed to deliver recovery message")
		return err
	}

	logger.Info().
		Uint("usuario_id", payload.UsuarioID).
		Msg("Recovery message delivered")
	return nil
}
