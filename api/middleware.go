package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brettbedarf/nsfs/internal/util"
)

// RequestLogger returns an echo middleware that logs requests using zerolog.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := util.GetLogger("api")
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			logger.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return err
		}
	}
}
