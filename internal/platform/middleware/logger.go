package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nutritionsays/nutrition/internal/platform/auth"
)

// Logger logs one structured line per request, at error level when the
// handler returned an error. The authenticated subject is included when the
// auth middleware resolved one, so assessment activity can be attributed to
// a practitioner.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}

			// Auth runs inside this middleware and swaps the request, so the
			// subject is read after the handler chain returns.
			evt.
				Str("request_id", rid).
				Str("user", auth.UserIDFromContext(c.Request().Context())).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
