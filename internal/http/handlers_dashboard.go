package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ngrassa/plateforme-electronique/internal/core"
	"github.com/ngrassa/plateforme-electronique/internal/services"
)

// dashboardResponse wraps the combined view model with an optional error
// banner. A failed upstream fetch still answers 200 so the page renders; the
// banner and empty collections tell the user what happened.
type dashboardResponse struct {
	services.DashboardView
	Error string `json:"error,omitempty"`
}

type clientsResponse struct {
	Clients []core.ClientSummary `json:"clients"`
	Error   string               `json:"error,omitempty"`
}

type paymentsResponse struct {
	Payments []core.Payment `json:"payments"`
	Error    string         `json:"error,omitempty"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if view, found := s.overviewMemo.Get(); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit")
		writeJSON(w, r, http.StatusOK, dashboardResponse{DashboardView: view})
		return
	}

	// Small timeout to avoid hanging the page on a slow gateway
	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	view, err := s.dashboard.Overview(ctx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard overview error", "error", err)
		writeJSON(w, r, http.StatusOK, dashboardResponse{
			DashboardView: emptyDashboardView(),
			Error:         apiMessage(err),
		})
		return
	}

	s.overviewMemo.Set(view)
	writeJSON(w, r, http.StatusOK, dashboardResponse{DashboardView: view})
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if clients, found := s.clientsMemo.Get(); found {
		slog.DebugContext(r.Context(), "Clients cache hit", "count", len(clients))
		writeJSON(w, r, http.StatusOK, clientsResponse{Clients: clients})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	clients, err := s.dashboard.Clients(ctx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Client roll-up error", "error", err)
		writeJSON(w, r, http.StatusOK, clientsResponse{
			Clients: []core.ClientSummary{},
			Error:   apiMessage(err),
		})
		return
	}

	s.clientsMemo.Set(clients)
	writeJSON(w, r, http.StatusOK, clientsResponse{Clients: clients})
}

func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if payments, found := s.paymentsMemo.Get(); found {
		slog.DebugContext(r.Context(), "Payments cache hit", "count", len(payments))
		writeJSON(w, r, http.StatusOK, paymentsResponse{Payments: payments})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	payments, err := s.dashboard.Payments(ctx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment history error", "error", err)
		writeJSON(w, r, http.StatusOK, paymentsResponse{
			Payments: []core.Payment{},
			Error:    apiMessage(err),
		})
		return
	}

	s.paymentsMemo.Set(payments)
	writeJSON(w, r, http.StatusOK, paymentsResponse{Payments: payments})
}

// emptyDashboardView keeps the collections non-null in the JSON so the page
// can still iterate them.
func emptyDashboardView() services.DashboardView {
	return services.DashboardView{
		Series:         []core.MetricPoint{},
		Chart:          []core.ChartPoint{},
		RecentInvoices: []core.Invoice{},
		RecentPayments: []core.Payment{},
	}
}
