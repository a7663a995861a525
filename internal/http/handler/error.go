package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel/trace"

	"statutes/internal/http/middleware"
	"statutes/internal/logging"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_QUERY", "NOT_FOUND", "STORE_UNAVAILABLE")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// wantsJSON reports whether an error for this request should be JSON rather
// than an HTML page.
func wantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses: JSON for API clients, an HTML page for browsers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		var code, msg string
		switch status {
		case fiber.StatusBadRequest:
			code, msg = "BAD_REQUEST", "bad request"
		case fiber.StatusNotFound:
			code, msg = "NOT_FOUND", "resource not found"
		case fiber.StatusMethodNotAllowed:
			code, msg = "METHOD_NOT_ALLOWED", "method not allowed"
		default:
			status = fiber.StatusInternalServerError
			code, msg = "INTERNAL_ERROR", "internal server error"
		}

		if wantsJSON(c) {
			return writeError(c, status, code, msg)
		}
		return renderError(c, status, utils.StatusMessage(status), strings.ToUpper(msg[:1])+msg[1:]+".", "")
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report query parameter names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("query"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseQuery binds and validates query parameters into out.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return errors.New("invalid query parameters")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid query parameter %s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return errors.New("invalid query parameters")
	}
	return nil
}

// logStoreError records a failed store call with enough context to find the
// request and its trace.
func logStoreError(c *fiber.Ctx, logger *logging.Logger, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	fields := map[string]any{
		"request_id": middleware.RequestIDFrom(c),
		"method":     c.Method(),
		"path":       c.Path(),
	}
	if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
		fields["trace_id"] = sc.TraceID().String()
	}
	logger.Error("http", "store_unavailable", err, fields)
}
