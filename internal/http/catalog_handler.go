package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/catalog"
)

// CatalogHandler serves the admin catalog endpoints.
type CatalogHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewCatalogHandler creates the handler over the catalog store.
func NewCatalogHandler(db *gorm.DB, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{db: db, logger: logger}
}

// CreateItemParams is the admin payload for adding a catalog item.
type CreateItemParams struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// List returns every item for the admin table.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	items, err := catalog.GetAllItems(h.db)
	if err != nil {
		h.logger.Error("Failed to list items", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list items",
		})
	}
	return c.JSON(fiber.Map{"items": items})
}

// Create adds a new catalog item with a generated identifier.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var params CreateItemParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request",
		})
	}
	if params.Slug == "" || params.Title == "" || params.Price < 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "slug, title and a non-negative price are required",
		})
	}

	item := &catalog.Item{
		ID:       uuid.NewString(),
		Slug:     params.Slug,
		Title:    params.Title,
		Price:    params.Price,
		Status:   catalog.StatusAvailable,
		ImageURL: params.ImageURL,
	}
	if err := catalog.CreateItem(h.db, item); err != nil {
		h.logger.Error("Failed to create item", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create item",
		})
	}

	return c.Status(http.StatusCreated).JSON(item)
}

// UpdateStatusParams is the admin payload for a lifecycle transition.
type UpdateStatusParams struct {
	Status catalog.ItemStatus `json:"status"`
}

// UpdateStatus transitions an item between lifecycle statuses.
func (h *CatalogHandler) UpdateStatus(c *fiber.Ctx) error {
	var params UpdateStatusParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request",
		})
	}

	switch params.Status {
	case catalog.StatusAvailable, catalog.StatusReserved, catalog.StatusSold, catalog.StatusOfflineSold:
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid status",
		})
	}

	err := catalog.UpdateItemStatus(h.db, c.Params("id"), params.Status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "item not found",
		})
	}
	if err != nil {
		h.logger.Error("Failed to update item status", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update item",
		})
	}

	return c.JSON(fiber.Map{"status": params.Status})
}
