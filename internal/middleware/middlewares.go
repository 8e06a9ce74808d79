// Package middleware holds the HTTP middleware stack: CORS, request
// logging, panic recovery, request IDs, request-scoped loggers, rate
// limiting, and the global error handler.
package middleware

import (
	"github.com/chislo/manuscripthub/internal/server"
)

// Middlewares groups the middleware components used by the HTTP
// server so routing code can wire them from one place.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers,
	// and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped
	// logger carrying request_id, method, path, and ip.
	ContextEnhancer *ContextEnhancer

	// RateLimit throttles the AI-backed endpoints.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
