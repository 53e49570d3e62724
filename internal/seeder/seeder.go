// Package seeder populates the store with demo data for local
// development.
package seeder

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/models"
)

// Seeder handles the data seeding process.
type Seeder struct {
	DB         *gorm.DB
	Logger     *slog.Logger
	EventCount int
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, logger *slog.Logger, eventCount int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		DB:         db,
		Logger:     logger,
		EventCount: eventCount,
	}
}

var demoItems = []catalog.Item{
	{Slug: "silk-kebaya-emerald", Title: "Silk Kebaya Emerald", Price: 250, Status: catalog.StatusSold},
	{Slug: "batik-wrap-dress", Title: "Batik Wrap Dress", Price: 180, Status: catalog.StatusAvailable},
	{Slug: "songket-evening-gown", Title: "Songket Evening Gown", Price: 420, Status: catalog.StatusOfflineSold},
	{Slug: "linen-baju-kurung", Title: "Linen Baju Kurung", Price: 95, Status: catalog.StatusAvailable},
	{Slug: "vintage-selendang", Title: "Vintage Selendang", Price: 60, Status: catalog.StatusReserved},
	{Slug: "hand-beaded-kasut", Title: "Hand-beaded Kasut Manek", Price: 140, Status: catalog.StatusAvailable},
}

// Seed populates demo catalog items and randomized view/click traffic.
func (s *Seeder) Seed() error {
	start := time.Now()
	s.Logger.Info("Seeding demo data...", slog.Int("eventCount", s.EventCount))

	items := make([]catalog.Item, len(demoItems))
	copy(items, demoItems)
	for i := range items {
		items[i].ID = uuid.NewString()
	}

	err := models.PerformWrite(s.Logger, s.DB, func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}

	// A small stable pool of visitors so the weekly distinct count is
	// meaningful.
	visitors := make([]string, 25)
	for i := range visitors {
		visitors[i] = uuid.NewString()
	}

	views := make([]analytics.ViewEvent, 0, s.EventCount)
	clicks := make([]analytics.ClickEvent, 0, s.EventCount/5)
	for i := 0; i < s.EventCount; i++ {
		item := items[rand.IntN(len(items))]
		visitor := visitors[rand.IntN(len(visitors))]
		// Spread events over the last 30 days so some fall outside the
		// weekly window.
		ts := time.Now().Add(-time.Duration(rand.IntN(30*24)) * time.Hour)

		views = append(views, analytics.ViewEvent{
			ItemID:    item.ID,
			VisitorID: visitor,
			Timestamp: ts,
		})
		if rand.IntN(5) == 0 {
			clicks = append(clicks, analytics.ClickEvent{
				ItemID:    item.ID,
				VisitorID: visitor,
				Timestamp: ts,
			})
		}
	}

	err = models.PerformWrite(s.Logger, s.DB, func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&views, 500).Error; err != nil {
			return err
		}
		if len(clicks) > 0 {
			return tx.CreateInBatches(&clicks, 500).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	s.Logger.Info("Seeding completed",
		slog.Int("items", len(items)),
		slog.Int("views", len(views)),
		slog.Int("clicks", len(clicks)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
