package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON object per line on stdout,
// timestamped in UTC.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter is Logger with an explicit sink and timestamp location.
// Fields:
// - ts (RFC3339 with milliseconds, in loc)
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path (no query string; search terms stay out of the log)
// - status
// - latency (in milliseconds, as float)
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	var mu sync.Mutex
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid := RequestIDFrom(c)
		fields := map[string]any{
			"ts":         start.In(loc).Format("2006-01-02T15:04:05.000Z07:00"),
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     responseStatus(c, err),
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}

		mu.Lock()
		_ = enc.Encode(fields)
		mu.Unlock()

		return err
	}
}

// responseStatus is the status the client will see. Errors are turned into
// responses by the app's ErrorHandler only after the middleware chain
// unwinds, so they are mapped here the same way.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
