package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
)

const exportLimit = 1000

// InsightsHandler serves the AI insight endpoints.
type InsightsHandler struct {
	cache  *insights.Cache
	logger *slog.Logger
}

// NewInsightsHandler creates the handler over an insight cache.
func NewInsightsHandler(cache *insights.Cache, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{cache: cache, logger: logger}
}

// Refresh recomputes metrics, regenerates the insight, and appends a new
// record. This is the only insight path that can return non-2xx: a fatal
// metrics or storage failure.
func (h *InsightsHandler) Refresh(c *fiber.Ctx) error {
	record, snapshot, err := h.cache.Refresh(c.UserContext())
	if err != nil {
		h.logger.Error("Insight refresh failed", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI insight failed",
		})
	}

	return c.JSON(fiber.Map{
		"insight": record.InsightText,
		"metrics": snapshot,
		"cached":  false,
	})
}

// Current serves the latest stored insight without recomputation. Both
// fields are null only when no record has ever been created.
func (h *InsightsHandler) Current(c *fiber.Ctx) error {
	record, err := h.cache.Current()
	if err != nil {
		h.logger.Error("Failed to read current insight", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI insight failed",
		})
	}

	if record == nil {
		return c.JSON(fiber.Map{
			"insight": nil,
			"metrics": nil,
			"cached":  true,
		})
	}

	return c.JSON(fiber.Map{
		"insight": record.InsightText,
		"metrics": record.Metrics,
		"cached":  true,
	})
}

// Export streams the insight log as an xlsx workbook.
func (h *InsightsHandler) Export(c *fiber.Ctx) error {
	records, err := h.cache.History(exportLimit)
	if err != nil {
		h.logger.Error("Failed to read insight history", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "export failed",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Created At", "Insight", "Total Items", "Available", "Sold",
		"Revenue", "Weekly Visitors", "Top Collection", "Top Demand Item"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, record := range records {
		snapshot, err := record.Snapshot()
		if err != nil {
			h.logger.Warn("Skipping record with undecodable metrics",
				slog.Uint64("record_id", uint64(record.ID)), slog.Any("error", err))
			continue
		}
		values := []interface{}{
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.InsightText,
			snapshot.TotalItems,
			snapshot.AvailableItems,
			snapshot.SoldItems,
			snapshot.TotalRevenue,
			snapshot.WeekVisitors,
			snapshot.TopCollection,
			snapshot.TopDemandItem,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.logger.Error("Failed to build export workbook", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "export failed",
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "insights.xlsx"))
	return c.Send(buf.Bytes())
}
