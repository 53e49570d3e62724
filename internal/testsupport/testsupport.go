// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
)

// allModels returns all application models for migration
func allModels() []any {
	return []any{
		&catalog.Item{},
		&analytics.ViewEvent{},
		&analytics.ClickEvent{},
		&insights.InsightRecord{},
	}
}

// SetupTestDB creates an isolated in-memory SQLite database migrated
// with all application models.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique DSN per test keeps shared-cache databases isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(allModels()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestItem inserts a catalog item and returns it.
func CreateTestItem(t *testing.T, db *gorm.DB, title string, price float64, status catalog.ItemStatus) catalog.Item {
	t.Helper()

	item := catalog.Item{
		ID:     uuid.NewString(),
		Slug:   uuid.NewString(),
		Title:  title,
		Price:  price,
		Status: status,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// CreateTestView inserts a view event.
func CreateTestView(t *testing.T, db *gorm.DB, itemID, visitorID string, ts time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&analytics.ViewEvent{
		ItemID:    itemID,
		VisitorID: visitorID,
		Timestamp: ts,
	}).Error)
}

// CreateTestClick inserts a click event.
func CreateTestClick(t *testing.T, db *gorm.DB, itemID, visitorID string, ts time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&analytics.ClickEvent{
		ItemID:    itemID,
		VisitorID: visitorID,
		Timestamp: ts,
	}).Error)
}
