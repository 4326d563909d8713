// Package http is the JSON API surface: insight reads, transaction and
// budget writes, and a synchronous reconcile endpoint.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/ledger"
	"fintrack/internal/reconcile"
	"fintrack/internal/services"
)

// Store is the read surface the handlers need. The SQLite repository
// satisfies it.
type Store interface {
	ledger.TransactionRepository
	ledger.BudgetRepository
	GetTransaction(ctx context.Context, userID, id string) (*core.Transaction, error)
	GetBudget(ctx context.Context, userID, id string) (*core.Budget, error)
}

type Server struct {
	http.Server

	engine       *insights.Engine
	reconciler   *reconcile.Reconciler
	transactions *services.TransactionService
	budgets      *services.BudgetService
	store        Store

	rateLimiter *rateLimiter

	// Overview responses are cached per user and invalidated on writes.
	overviewCache cache.Cache[*insights.Overview]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

type Options struct {
	Addr         string
	Engine       *insights.Engine
	Reconciler   *reconcile.Reconciler
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Store        Store
	CacheSize    int
	CacheTTL     time.Duration
}

func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	manager := cache.NewManager()
	overviewCache := cache.NewLRUCache[*insights.Overview](opts.CacheSize, opts.CacheTTL)
	manager.Register(overviewCache)
	manager.StartCleanup(10 * time.Minute)

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		engine:        opts.Engine,
		reconciler:    opts.Reconciler,
		transactions:  opts.Transactions,
		budgets:       opts.Budgets,
		store:         opts.Store,
		rateLimiter:   newRateLimiter(),
		overviewCache: overviewCache,
		cacheManager:  manager,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/insights/overview", s.withMiddleware(s.handleOverview))
	mux.HandleFunc("GET /api/insights/spending", s.withMiddleware(s.handleSpending))
	mux.HandleFunc("GET /api/insights/recommendations", s.withMiddleware(s.handleRecommendations))
	mux.HandleFunc("GET /api/insights/health", s.withMiddleware(s.handleFinancialHealth))
	mux.HandleFunc("GET /api/insights/predictions", s.withMiddleware(s.handlePredictions))

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/{id}", s.withMiddleware(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/budgets", s.withMiddleware(s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.withMiddleware(s.handleCreateBudget))
	mux.HandleFunc("POST /api/budgets/reconcile", s.withMiddleware(s.handleReconcile))
	mux.HandleFunc("GET /api/budgets/{id}", s.withMiddleware(s.handleGetBudget))
	mux.HandleFunc("PUT /api/budgets/{id}", s.withMiddleware(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.withMiddleware(s.handleDeleteBudget))

	return s
}

// invalidateOverview drops the cached overview after any write for the user.
func (s *Server) invalidateOverview(userID string) {
	s.overviewCache.Delete(userID)
}

// Shutdown stops background routines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request IDs, security headers, rate limiting on
// writes, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
