// Package http serves the dashboard view models as JSON endpoints backed by
// the billing API gateway.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ngrassa/plateforme-electronique/internal/billing"
	"github.com/ngrassa/plateforme-electronique/internal/cache"
	"github.com/ngrassa/plateforme-electronique/internal/core"
	"github.com/ngrassa/plateforme-electronique/internal/services"
)

// EventPublisher notifies other consumers that billing data changed.
type EventPublisher interface {
	PublishBillingEvent(ctx context.Context, resource, action, entityID string) error
}

type Server struct {
	http.Server
	dashboard   *services.DashboardService
	listing     *services.ListingEngine
	creator     billing.InvoiceCreator
	ownerID     string
	rateLimiter *rateLimiter
	events      EventPublisher

	// Memoized view models; dropped on billing events or invoice creation.
	overviewMemo *cache.Memo[services.DashboardView]
	clientsMemo  *cache.Memo[[]core.ClientSummary]
	paymentsMemo *cache.Memo[[]core.Payment]

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run http.Server.
func NewServer(addr string, dashboard *services.DashboardService, listing *services.ListingEngine, creator billing.InvoiceCreator, ownerID string, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		dashboard:    dashboard,
		listing:      listing,
		creator:      creator,
		ownerID:      ownerID,
		rateLimiter:  newRateLimiter(),
		overviewMemo: cache.NewMemo[services.DashboardView](cacheTTL),
		clientsMemo:  cache.NewMemo[[]core.ClientSummary](cacheTTL),
		paymentsMemo: cache.NewMemo[[]core.Payment](cacheTTL),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/ui/dashboard", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("/ui/invoices", s.withSecurityHeaders(s.handleInvoiceListing))
	mux.HandleFunc("/ui/clients", s.withSecurityHeaders(s.handleClients))
	mux.HandleFunc("/ui/payments", s.withSecurityHeaders(s.handlePayments))
	mux.HandleFunc("/invoices", s.withSecurityHeaders(s.handleCreateInvoice))

	return s
}

// SetEventPublisher wires an optional broker publisher; without one, invoice
// creations only invalidate the local caches.
func (s *Server) SetEventPublisher(events EventPublisher) {
	s.events = events
}

// InvalidateViews drops every memoized view model so the next request
// recomputes from fresh gateway data.
func (s *Server) InvalidateViews() {
	s.overviewMemo.Invalidate()
	s.clientsMemo.Invalidate()
	s.paymentsMemo.Invalidate()
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Apply rate limiting to POST requests (invoice creation)
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
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
