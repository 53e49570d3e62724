package insights

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/pkg/async"
)

// weeklyWindow is the trailing window used for the distinct visitor count.
const weeklyWindow = 7 * 24 * time.Hour

// MetricsSnapshot is a point-in-time computed aggregate over catalog and
// event state. It is never persisted on its own, only embedded in an
// InsightRecord.
type MetricsSnapshot struct {
	TotalItems     int     `json:"totalItems"`
	AvailableItems int     `json:"availableItems"`
	SoldItems      int     `json:"soldItems"`
	TotalRevenue   float64 `json:"totalRevenue"`
	WeekVisitors   int     `json:"weekVisitors"`
	TopCollection  string  `json:"topCollection"`
	TopDemandItem  string  `json:"topDemandItem"`
}

// SnapshotBuilder computes metrics snapshots from the catalog and the
// event store.
type SnapshotBuilder struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSnapshotBuilder creates a snapshot builder over the given database.
func NewSnapshotBuilder(db *gorm.DB, logger *slog.Logger) *SnapshotBuilder {
	return &SnapshotBuilder{
		db:     db,
		logger: logger,
	}
}

// Build computes one MetricsSnapshot. The independent reads (items,
// view events, click events, weekly visitor count) run concurrently and
// are joined before aggregation. Any failed read is fatal: metrics must
// reflect a complete picture of the store.
func (b *SnapshotBuilder) Build(ctx context.Context) (*MetricsSnapshot, error) {
	cutoff := time.Now().Add(-weeklyWindow)

	tasks := []async.Task{
		{
			Name: "items",
			Execute: func() (interface{}, error) {
				return catalog.GetAllItems(b.db)
			},
		},
		{
			Name: "views",
			Execute: func() (interface{}, error) {
				return analytics.GetAllViewEvents(b.db)
			},
		},
		{
			Name: "clicks",
			Execute: func() (interface{}, error) {
				return analytics.GetAllClickEvents(b.db)
			},
		},
		{
			Name: "weekVisitors",
			Execute: func() (interface{}, error) {
				return analytics.CountDistinctVisitorsSince(b.db, cutoff)
			},
		},
	}

	results := async.Run(ctx, tasks)
	for _, name := range []string{"items", "views", "clicks", "weekVisitors"} {
		if result, ok := results[name]; !ok || result.Err != nil {
			var err error
			if ok {
				err = result.Err
			} else {
				err = ctx.Err()
			}
			b.logger.Error("Snapshot fetch failed", slog.String("task", name), slog.Any("error", err))
			return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
		}
	}

	items := results["items"].Data.([]catalog.Item)
	views := results["views"].Data.([]analytics.ViewEvent)
	clicks := results["clicks"].Data.([]analytics.ClickEvent)
	weekVisitors := results["weekVisitors"].Data.(int64)

	snapshot := &MetricsSnapshot{
		TotalItems:    len(items),
		WeekVisitors:  int(weekVisitors),
		TopCollection: NoDataSentinel,
		TopDemandItem: NoDataSentinel,
	}

	// Partition by lifecycle status. Statuses outside the available and
	// sold families (e.g. reserved) count toward the total only.
	var topSold *catalog.Item
	for i := range items {
		item := &items[i]
		switch {
		case item.Status == catalog.StatusAvailable:
			snapshot.AvailableItems++
		case item.Status.IsSoldFamily():
			snapshot.SoldItems++
			snapshot.TotalRevenue += coercePrice(item.Price)
			// First encountered wins on equal price; item order is stable.
			if topSold == nil || coercePrice(item.Price) > coercePrice(topSold.Price) {
				topSold = item
			}
		}
	}
	if topSold != nil {
		snapshot.TopCollection = topSold.Title
	}

	// Demand ranking runs over all-time events, not just the trailing
	// week. An identifier that no longer resolves to an item falls back
	// to the sentinel.
	if topID, ok := TopDemandItemID(views, clicks); ok {
		for i := range items {
			if items[i].ID == topID {
				snapshot.TopDemandItem = items[i].Title
				break
			}
		}
	}

	return snapshot, nil
}

// coercePrice treats prices that cannot contribute to revenue as zero.
// The item itself still counts toward the sold total.
func coercePrice(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}
