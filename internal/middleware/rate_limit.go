package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/chislo/manuscripthub/internal/errs"
	"github.com/chislo/manuscripthub/internal/server"
)

// RateLimitMiddleware throttles the AI-backed endpoints per client IP
// so one user cannot drain the upstream model quota.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// AIThrottle allows roughly ten AI calls per minute per IP with a
// small burst for back-to-back form submissions.
func (r *RateLimitMiddleware) AIThrottle() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(6 * time.Second),
			Burst:     3,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.server.Logger.Warn().
				Str("ip", identifier).
				Str("path", c.Path()).
				Msg("rate limit hit")
			return errs.NewTooManyRequestsError("Too many AI requests. Please wait a minute and try again.")
		},
	})
}
