// Package internal contains core application functionality
package internal

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	v1 "github.com/khaizafron/MAISON-DE-KAIRA/api/v1"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/analytics"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/http"
	"github.com/khaizafron/MAISON-DE-KAIRA/internal/insights"
)

// publicCORSConfig is the CORS configuration for the public endpoints.
// The storefront frontend is served from a different origin.
var publicCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "POST,GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// RouteDeps carries the dependencies the route handlers need.
type RouteDeps struct {
	DB        *gorm.DB
	Logger    *slog.Logger
	Collector *analytics.Collector
	Cache     *insights.Cache
}

// MountRoutes mounts all application routes on the fiber app.
func MountRoutes(app *fiber.App, deps RouteDeps) {
	healthHandler := http.NewHealthHandler(deps.DB, deps.Logger)
	insightsHandler := http.NewInsightsHandler(deps.Cache, deps.Logger)
	catalogHandler := http.NewCatalogHandler(deps.DB, deps.Logger)
	publicHandler := v1.NewPublicHandler(deps.DB, deps.Collector, deps.Logger)

	// === ROOT ROUTES ===
	app.Get("/_health", healthHandler.Index)
	app.Head("/_health", healthHandler.Index)

	// === PUBLIC API ROUTES ===
	public := app.Group("/x/api/v1", cors.New(publicCORSConfig))
	public.Get("/items", publicHandler.ListItems)
	public.Get("/items/:slug", publicHandler.GetItemBySlug)
	public.Post("/track/view", publicHandler.TrackView)
	public.Post("/track/click", publicHandler.TrackClick)

	// === ADMIN API ROUTES ===
	admin := app.Group("/admin/api")
	admin.Get("/items", catalogHandler.List)
	admin.Post("/items", catalogHandler.Create)
	admin.Post("/items/:id/status", catalogHandler.UpdateStatus)

	admin.Post("/ai-insights", insightsHandler.Refresh)
	admin.Get("/ai-insights", insightsHandler.Current)
	admin.Get("/ai-insights/export", insightsHandler.Export)
}
