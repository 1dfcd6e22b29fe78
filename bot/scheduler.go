package bot

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"opportunities-bot/models"
	"opportunities-bot/scanner"
)

var c *cron.Cron

// startScheduler starts the periodic reconciliation job and, when
// configured, an immediate pass on startup.
func startScheduler(r *scanner.Reconciler, cfg models.BotConfig) {
	schedule := cfg.SyncSchedule
	if schedule == "" {
		schedule = "@hourly"
	}

	c = cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Info().Msg("Running scheduled sync...")
		r.ReconcileAll(context.Background())
	})
	if err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("Could not set up cron job")
	}
	c.Start()
	log.Info().Str("schedule", schedule).Msg("Sync job scheduled")

	if cfg.SyncAtStartup {
		go func() {
			log.Info().Msg("Performing initial sync on startup...")
			r.ReconcileAll(context.Background())
		}()
	} else {
		log.Info().Msg("Skipping initial sync on startup as per configuration")
	}
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Info().Msg("Scheduler stopped")
	}
}
