// Package jobs runs the background maintenance work: event retention
// cleanup and the scheduled insight refresh.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/config"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/database"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
)

// Scheduler is responsible for running background jobs
type Scheduler struct {
	dbManager *database.DBManager
	logger    *slog.Logger
	cfg       *config.Config
	ctx       context.Context
	cancel    context.CancelFunc
	isRunning bool

	// Mutex to prevent concurrent job executions
	processingMutex sync.Mutex
	isProcessing    bool

	// Job instances
	cleanupJob *CleanupJob
	refreshJob *InsightRefreshJob

	cleanupTicker *time.Ticker
	refreshTicker *time.Ticker
}

// NewScheduler creates a scheduler with the standard job set.
func NewScheduler(dbManager *database.DBManager, logger *slog.Logger, cfg *config.Config, cache *insights.Cache) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		dbManager:  dbManager,
		logger:     logger,
		cfg:        cfg,
		ctx:        ctx,
		cancel:     cancel,
		cleanupJob: NewCleanupJob(dbManager, logger, cfg),
		refreshJob: NewInsightRefreshJob(cache, logger),
	}
}

// executeJobSafely runs a job only if no other job is currently executing
func (s *Scheduler) executeJobSafely(jobName string, jobFunc func() error) {
	s.processingMutex.Lock()
	if s.isProcessing {
		s.logger.Debug("Skipping job execution - previous job still running", slog.String("job", jobName))
		s.processingMutex.Unlock()
		return
	}
	s.isProcessing = true
	s.processingMutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job",
				slog.String("job", jobName),
				slog.Any("panic", r))
		}

		s.processingMutex.Lock()
		s.isProcessing = false
		s.processingMutex.Unlock()
	}()

	if err := jobFunc(); err != nil {
		s.logger.Error("Error executing job", slog.String("job", jobName), slog.Any("error", err))
	}
}

// Start begins all background jobs
func (s *Scheduler) Start() error {
	if s.isRunning {
		s.logger.Info("Background jobs already running.")
		return nil
	}

	s.logger.Info("Starting background jobs...")
	s.isRunning = true

	s.startCleanupJob()
	s.startRefreshJob()

	return nil
}

func (s *Scheduler) startCleanupJob() {
	interval := 24 * time.Hour
	s.logger.Info("Starting cleanup job", slog.Duration("interval", interval))
	s.cleanupTicker = time.NewTicker(interval)

	go func() {
		// Run initial cleanup
		s.executeJobSafely("cleanup", s.cleanupJob.Run)

		for {
			select {
			case <-s.cleanupTicker.C:
				s.executeJobSafely("cleanup", s.cleanupJob.Run)
			case <-s.ctx.Done():
				s.logger.Info("Cleanup job stopped")
				return
			}
		}
	}()
}

func (s *Scheduler) startRefreshJob() {
	if s.cfg.InsightRefreshInterval <= 0 {
		s.logger.Info("Scheduled insight refresh disabled")
		return
	}

	interval := time.Duration(s.cfg.InsightRefreshInterval) * time.Second
	s.logger.Info("Starting insight refresh job", slog.Duration("interval", interval))
	s.refreshTicker = time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-s.refreshTicker.C:
				s.executeJobSafely("insight_refresh", s.refreshJob.Run)
			case <-s.ctx.Done():
				s.logger.Info("Insight refresh job stopped")
				return
			}
		}
	}()
}

// Stop cancels all running jobs.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}

	s.cancel()
	if s.cleanupTicker != nil {
		s.cleanupTicker.Stop()
	}
	if s.refreshTicker != nil {
		s.refreshTicker.Stop()
	}
	s.isRunning = false
	s.logger.Info("Background jobs stopped")
}
