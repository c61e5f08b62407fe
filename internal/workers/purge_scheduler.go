package workers

import (
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/courtly-dev/courtly/internal/tasks"
)

// StartPurgeScheduler enqueues the reset-token purge on the given cron
// schedule. An empty schedule disables the purge. The returned cron can
// be stopped on shutdown.
func StartPurgeScheduler(client *asynq.Client, schedule string, logger zerolog.Logger) (*cron.Cron, error) {
	if schedule == "" {
		logger.Info().Msg("Reset-token purge disabled (no schedule)")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := client.Enqueue(tasks.NewResetTokenPurgeTask(), asynq.Queue("low")); err != nil {
			logger.Error().Err(err).Msg("Failed to enqueue reset-token purge")
			return
		}
		logger.Debug().Msg("Enqueued reset-token purge")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info().Str("schedule", schedule).Msg("Reset-token purge scheduled")
	return c, nil
}
