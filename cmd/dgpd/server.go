package main

import (
	"errors"
	"sync"
	"time"

	"github.com/dgp-systems/compliance-kernel/pkg/cache"
	"github.com/dgp-systems/compliance-kernel/pkg/capsule"
	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
	"github.com/dgp-systems/compliance-kernel/pkg/store"
	"github.com/gofiber/fiber/v3"
)

// ServerConfig wires the gateway's dependencies. Every field is an
// interface or a concrete small value, so a test can substitute an
// in-memory store/cache without a network dependency.
type ServerConfig struct {
	CapsuleSource capsule.Source
	Store         store.ReportStore
	Cache         cache.ReportCache
	CacheTTL      time.Duration
}

// Server is the gateway's long-lived state: a memoized capsule (loaded
// lazily on the first request and reused by every later request, mirroring
// the teacher's LoadScorerConfig fallback-once pattern) plus the
// store/cache dependencies.
type Server struct {
	cfg ServerConfig

	mu      sync.RWMutex
	capsule *dgp.Capsule
}

// NewServer builds a Server. It does not eagerly load the capsule; the
// first request pays that cost and every later request reuses it.
func NewServer(cfg ServerConfig) *Server {
	return &Server{cfg: cfg}
}

// loadCapsule returns the memoized default capsule, loading it on the
// first call. A source reporting capsule.ErrCapsuleNotFound is not an
// error here: it substitutes capsule.DefaultCapsule() and memoizes that
// instead, per SPEC_FULL.md §4.2a. Any other load error is propagated.
func (s *Server) loadCapsule() (*dgp.Capsule, error) {
	s.mu.RLock()
	if s.capsule != nil {
		c := s.capsule
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	c, err := s.cfg.CapsuleSource.Load()
	if err != nil {
		if !errors.Is(err, capsule.ErrCapsuleNotFound) {
			return nil, err
		}
		c = capsule.DefaultCapsule()
	}

	s.mu.Lock()
	s.capsule = c
	s.mu.Unlock()
	return c, nil
}

// App builds the fiber.App with every route registered.
func (s *Server) App() *fiber.App {
	app := fiber.New()

	app.Get("/healthz", s.handleHealthz)
	app.Post("/v1/evaluate", s.handleEvaluate)

	return app
}
