// Package http exposes the JSON API: transaction writes, aggregated results
// views, catalog maintenance and the export download.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"barberia/internal/cache"
	"barberia/internal/core"
	"barberia/internal/middleware/ratelimit"
	"barberia/internal/middleware/security"
	"barberia/internal/middleware/trace"
	"barberia/internal/services"
	"barberia/internal/store"
)

type Server struct {
	http.Server

	store   store.Store
	results *services.ResultsService

	rateLimiter *ratelimit.Limiter
	sweeper     *cache.Sweeper

	// Catalog reads are cached; writes invalidate.
	servicesCache   *cache.Cache[[]core.Service]
	categoriesCache *cache.Cache[[]core.ExpenseCategory]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server listening on addr.
func NewServer(addr string, st store.Store) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:           st,
		results:         services.NewResultsService(st),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		sweeper:         cache.NewSweeper(),
		servicesCache:   cache.New[[]core.Service](10, 5*time.Minute),
		categoriesCache: cache.New[[]core.ExpenseCategory](10, 5*time.Minute),
	}

	s.sweeper.Track(s.servicesCache)
	s.sweeper.Track(s.categoriesCache)
	s.sweeper.Run(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("GET /api/periods", s.handlePeriods)
	mux.HandleFunc("GET /api/export", s.handleExport)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("DELETE /api/transactions", s.handleClearTransactions)

	mux.HandleFunc("GET /api/services", s.handleListServices)
	mux.HandleFunc("POST /api/services", s.handleSaveService)
	mux.HandleFunc("DELETE /api/services/{id}", s.handleDeleteService)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleSaveCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	traceMW := trace.NewMiddleware(clientIP)
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limitMW := s.rateLimiter.Middleware(clientIP, nil, ratelimit.MutatingOnly)

	handler := traceMW.Middleware(headersMW.Middleware(limitMW(mux)))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// Shutdown stops the HTTP server and the background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.sweeper != nil {
			s.sweeper.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
