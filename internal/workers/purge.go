package workers

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/courtly-dev/courtly/internal/models"
)

// HandleResetTokenPurge deletes expired and already-used reset tokens.
func HandleResetTokenPurge(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	result := db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", time.Now()).
		Delete(&models.PasswordReset{})
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("Failed to purge reset tokens")
		return result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info().
			Int64("purged", result.RowsAffected).
			Msg("Purged stale reset tokens")
	}
	return nil
}
