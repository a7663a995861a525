package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"statutes/internal/config"
	"statutes/internal/http/middleware"
)

// RegisterSetupRoutes is used instead of RegisterRoutes when the
// configuration is unusable: only liveness and metrics work, every other
// request gets the setup instructions with 503.
func RegisterSetupRoutes(app *fiber.App, cfgErr *config.Error, g prometheus.Gatherer) {
	app.Get("/healthz", LivenessProbe())
	if g != nil {
		app.Get("/metrics", Metrics(g))
	}
	app.Use(SetupRequired(cfgErr))
}

// SetupRequired answers every request with the configuration problem and
// how to fix it.
func SetupRequired(cfgErr *config.Error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if wantsJSON(c) {
			return writeError(c, fiber.StatusServiceUnavailable, "SETUP_REQUIRED", cfgErr.Error())
		}
		return render(c, fiber.StatusServiceUnavailable, "setup", setupData{
			layoutData:  layoutData{Title: "Configuration Required | " + appTitle, RequestID: middleware.RequestIDFrom(c)},
			Problem:     cfgErr.Error(),
			Remediation: cfgErr.Remediation(),
		})
	}
}
