package handler

import (
	"github.com/chislo/manuscripthub/internal/checker"
	"github.com/chislo/manuscripthub/internal/guidelines"
	"github.com/chislo/manuscripthub/internal/recommend"
	"github.com/chislo/manuscripthub/internal/server"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around. Each app only wires the handlers its routes need.
type Handlers struct {
	Health  *HealthHandler
	Finder  *FinderHandler
	Checker *CheckerHandler
}

// NewFinderHandlers builds the handler set for the journal finder app.
func NewFinderHandlers(s *server.Server, engine *recommend.Engine) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Finder: NewFinderHandler(s, engine),
	}
}

// NewCheckerHandlers builds the handler set for the manuscript checker
// app.
func NewCheckerHandlers(s *server.Server, checks *checker.Service, gl *guidelines.Fetcher) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Checker: NewCheckerHandler(s, checks, gl),
	}
}
