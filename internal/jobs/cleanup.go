package jobs

import (
	"log/slog"
	"time"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/database"
)

const cleanupBatchSize = 1000

// CleanupJob removes behavioral events older than the retention period.
// This keeps the event tables bounded and supports data minimization.
type CleanupJob struct {
	dbManager *database.DBManager
	logger    *slog.Logger
	cfg       *config.Config
}

func NewCleanupJob(dbManager *database.DBManager, logger *slog.Logger, cfg *config.Config) *CleanupJob {
	return &CleanupJob{
		dbManager: dbManager,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run deletes view and click events past the retention window in batches
// to avoid locking the database for too long.
func (j *CleanupJob) Run() error {
	retentionDays := j.cfg.EventsRetentionDays
	db := j.dbManager.GetConnection()
	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	j.logger.Info("Starting cleanup of old events",
		slog.Int("retention_days", retentionDays),
		slog.Time("cutoff_date", cutoffDate))

	deleted, err := analytics.DeleteEventsOlderThan(db, cutoffDate, cleanupBatchSize)
	if err != nil {
		j.logger.Error("Failed to clean up old events", slog.Any("error", err))
		return err
	}

	if deleted > 0 {
		j.logger.Info("Cleanup completed", slog.Int64("deleted", deleted))
	} else {
		j.logger.Debug("No old events to clean up")
	}

	return nil
}
