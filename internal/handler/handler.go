// Package handler is the HTTP layer: it parses and validates requests,
// calls into the domain packages, and shapes responses.
package handler
