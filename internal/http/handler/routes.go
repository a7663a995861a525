package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "statutes/docs"
	"statutes/internal/logging"
	"statutes/internal/service"
)

// Deps are the collaborators of the HTTP surface.
type Deps struct {
	Statutes service.StatuteService
	// Store backs /health.
	Store Pinger
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer        prometheus.Gatherer
	SingleSelection bool
	Logger          *logging.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// Host and schemes stay empty in the doc so the UI targets whichever
	// host served it.
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", HealthCheck(d.Store))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", Metrics(d.Gatherer))
	}

	api := app.Group("/api")
	api.Get("/jurisdictions", ListJurisdictions(d.Statutes, logger))
	api.Get("/statutes", ListStatutes(d.Statutes, logger))
	api.Get("/statutes/:id", GetStatute(d.Statutes, logger))

	app.Get("/", ViewRouter(d.Statutes, ViewOptions{SingleSelection: d.SingleSelection, Logger: logger}))
}

// Metrics exposes g in the Prometheus text format.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
