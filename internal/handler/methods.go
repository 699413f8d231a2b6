package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/ratelimit"
)

// AllowMethods answers 405 with an Allow header for any method not listed.
// Routes using it are registered with Any so the check sees every method.
func AllowMethods(methods ...string) echo.MiddlewareFunc {
	allow := strings.Join(methods, ", ")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			for _, m := range methods {
				if method == m {
					return next(c)
				}
			}
			c.Response().Header().Set(echo.HeaderAllow, allow)
			return c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{
				Message: fmt.Sprintf("Method %s Not Allowed", method),
			})
		}
	}
}

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.KeyedLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Message: "Too many booking requests. Please try again shortly.",
				})
			}
			return next(c)
		}
	}
}
