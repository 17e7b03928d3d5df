package util

import (
	"github.com/labstack/echo/v4"
)

// AppVersionMiddleware stamps every response with the running server version
// so the web client can detect a stale deploy.
func AppVersionMiddleware(appVersion string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-Taskhub-Version", appVersion)
			return next(c)
		}
	}
}
