package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/models"
)

// InsightRecord is a persisted generated-text result paired with the
// metrics that produced it. The table is an append-only log; the current
// insight is the most recently created row. Records are superseded, not
// deleted, by later refreshes.
type InsightRecord struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	InsightText string      `gorm:"type:text;not null" json:"insight_text"`
	Metrics     models.JSON `gorm:"type:text;not null" json:"metrics"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

// Snapshot unmarshals the embedded metrics.
func (r *InsightRecord) Snapshot() (*MetricsSnapshot, error) {
	var snapshot MetricsSnapshot
	if err := json.Unmarshal(r.Metrics, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode stored metrics: %w", err)
	}
	return &snapshot, nil
}

// Cache persists generated insights and serves reads without
// recomputation. Concurrent refreshes may race; each appends its own
// record and the most recent commit wins. Callers needing single-flight
// semantics must add that themselves.
type Cache struct {
	db        *gorm.DB
	logger    *slog.Logger
	builder   *SnapshotBuilder
	generator *Generator
}

// NewCache wires the refresh pipeline over the given storage.
func NewCache(db *gorm.DB, logger *slog.Logger, builder *SnapshotBuilder, generator *Generator) *Cache {
	return &Cache{
		db:        db,
		logger:    logger,
		builder:   builder,
		generator: generator,
	}
}

// Refresh builds a new snapshot, generates an insight, and appends an
// InsightRecord. Generator failure is absorbed as the placeholder text;
// only a metrics or storage failure aborts the refresh, and then no
// partial record is written.
func (c *Cache) Refresh(ctx context.Context) (*InsightRecord, *MetricsSnapshot, error) {
	snapshot, err := c.builder.Build(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics computation failed: %w", err)
	}

	insightText := c.generator.Generate(ctx, snapshot)

	metricsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode metrics: %w", err)
	}

	record := &InsightRecord{
		InsightText: insightText,
		Metrics:     models.JSON(metricsJSON),
	}

	err = models.PerformWrite(c.logger, c.db, func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store insight record: %w", err)
	}

	c.logger.Info("Insight refreshed",
		slog.Uint64("record_id", uint64(record.ID)),
		slog.Bool("placeholder", insightText == PlaceholderInsight))

	return record, snapshot, nil
}

// Current returns the most recently created InsightRecord without any
// computation or external calls. It returns (nil, nil) when no record
// has ever been created.
func (c *Cache) Current() (*InsightRecord, error) {
	var record InsightRecord
	err := c.db.Order("created_at DESC, id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current insight: %w", err)
	}
	return &record, nil
}

// History returns the insight log, newest first, capped at limit.
func (c *Cache) History(limit int) ([]InsightRecord, error) {
	var records []InsightRecord
	if err := c.db.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read insight history: %w", err)
	}
	return records, nil
}
