package analytics

import (
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/models"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/pkg/geoip"
)

// EventKind distinguishes the two tracked behavioral signals.
type EventKind int

const (
	KindView EventKind = iota + 1
	KindClick
)

// TrackInput defines the input required to record a behavioral event.
type TrackInput struct {
	Kind      EventKind
	ItemID    string
	VisitorID string
	IPAddress string
	Timestamp time.Time
}

// Collector records behavioral events asynchronously. Writes are
// best-effort: a full queue drops the event and a failed write is logged
// and discarded, so tracking can never abort a user-facing flow.
type Collector struct {
	db     *gorm.DB
	logger *slog.Logger
	geo    *geoip.Resolver
	queue  chan TrackInput

	closeOnce sync.Once
	done      chan struct{}
}

// NewCollector creates a collector and starts its worker goroutine.
func NewCollector(db *gorm.DB, logger *slog.Logger, geo *geoip.Resolver, queueSize int) *Collector {
	c := &Collector{
		db:     db,
		logger: logger,
		geo:    geo,
		queue:  make(chan TrackInput, queueSize),
		done:   make(chan struct{}),
	}
	go c.worker()
	return c
}

// Track enqueues an event for asynchronous persistence. It never blocks;
// when the queue is full the event is dropped and counted as lost.
func (c *Collector) Track(input TrackInput) {
	select {
	case c.queue <- input:
	default:
		c.logger.Warn("Tracking queue full, dropping event",
			slog.String("item_id", input.ItemID))
	}
}

// Close stops accepting events, flushes the queue, and waits for the
// worker to finish.
func (c *Collector) Close() {
	c.closeOnce.Do(func() {
		close(c.queue)
		<-c.done
	})
}

func (c *Collector) worker() {
	defer close(c.done)
	for input := range c.queue {
		c.persist(input)
	}
}

func (c *Collector) persist(input TrackInput) {
	// Malformed rows are skipped, not fatal.
	if input.ItemID == "" || input.VisitorID == "" {
		c.logger.Debug("Skipping malformed tracking event",
			slog.String("item_id", input.ItemID),
			slog.String("visitor_id", input.VisitorID))
		return
	}

	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}
	country := c.geo.CountryCode(input.IPAddress)

	err := models.PerformWrite(c.logger, c.db, func(tx *gorm.DB) error {
		switch input.Kind {
		case KindClick:
			return tx.Create(&ClickEvent{
				ItemID:    input.ItemID,
				VisitorID: input.VisitorID,
				Country:   country,
				Timestamp: input.Timestamp,
			}).Error
		default:
			return tx.Create(&ViewEvent{
				ItemID:    input.ItemID,
				VisitorID: input.VisitorID,
				Country:   country,
				Timestamp: input.Timestamp,
			}).Error
		}
	})
	if err != nil {
		c.logger.Error("Failed to persist tracking event",
			slog.String("item_id", input.ItemID), slog.Any("error", err))
	}
}
