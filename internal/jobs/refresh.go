package jobs

import (
	"context"
	"log/slog"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
)

// InsightRefreshJob periodically regenerates the cached insight so the
// admin dashboard stays warm without manual refreshes. Manual refreshes
// through the API remain available and race-safe: each appends its own
// record.
type InsightRefreshJob struct {
	cache  *insights.Cache
	logger *slog.Logger
}

func NewInsightRefreshJob(cache *insights.Cache, logger *slog.Logger) *InsightRefreshJob {
	return &InsightRefreshJob{cache: cache, logger: logger}
}

// Run performs one refresh pass. Generator failures are absorbed by the
// cache; only fatal metrics or storage errors surface here.
func (j *InsightRefreshJob) Run() error {
	record, _, err := j.cache.Refresh(context.Background())
	if err != nil {
		j.logger.Error("Scheduled insight refresh failed", slog.Any("error", err))
		return err
	}

	j.logger.Debug("Scheduled insight refresh completed",
		slog.Uint64("record_id", uint64(record.ID)))
	return nil
}
