// Package v1 exposes the public storefront API: catalog reads and
// behavioral event tracking.
package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
)

const (
	msgEventAccepted  = "Event accepted"
	errInvalidRequest = "Invalid request"
)

// PublicHandler serves the unauthenticated storefront endpoints.
type PublicHandler struct {
	db        *gorm.DB
	collector *analytics.Collector
	logger    *slog.Logger
}

// NewPublicHandler creates the public API handler.
func NewPublicHandler(db *gorm.DB, collector *analytics.Collector, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{db: db, collector: collector, logger: logger}
}

// ListItems returns the available catalog for the storefront.
func (h *PublicHandler) ListItems(c *fiber.Ctx) error {
	items, err := catalog.GetItemsByStatus(h.db, catalog.StatusAvailable)
	if err != nil {
		h.logger.Error("Failed to list available items", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list items",
		})
	}
	return c.JSON(fiber.Map{"items": items})
}

// GetItemBySlug returns a single item for the collection page.
func (h *PublicHandler) GetItemBySlug(c *fiber.Ctx) error {
	item, err := catalog.GetItemBySlug(h.db, c.Params("slug"))
	if err != nil {
		var notFound *catalog.ItemNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "item not found",
			})
		}
		h.logger.Error("Failed to fetch item", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch item",
		})
	}
	return c.JSON(item)
}

// TrackEventParams is the payload for the tracking endpoints.
type TrackEventParams struct {
	ItemID    string    `json:"itemId"`
	VisitorID string    `json:"visitorId"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackView records an item page view. The write is dispatched off the
// request path; failures are logged and discarded, never surfaced here.
func (h *PublicHandler) TrackView(c *fiber.Ctx) error {
	return h.track(c, analytics.KindView)
}

// TrackClick records an outbound WhatsApp contact click.
func (h *PublicHandler) TrackClick(c *fiber.Ctx) error {
	return h.track(c, analytics.KindClick)
}

func (h *PublicHandler) track(c *fiber.Ctx, kind analytics.EventKind) error {
	var params TrackEventParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": errInvalidRequest,
		})
	}

	h.collector.Track(analytics.TrackInput{
		Kind:      kind,
		ItemID:    params.ItemID,
		VisitorID: params.VisitorID,
		IPAddress: c.IP(),
		Timestamp: params.Timestamp,
	})

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"message": msgEventAccepted,
		"status":  http.StatusAccepted,
	})
}
