package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/handlers"
	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/i18n"
	"github.com/solviatours/backoffice/internal/session"
)

// App is the HTTP surface: the route table plus the global middleware
// chain (auth context, language detection).
type App struct {
	mux      *http.ServeMux
	sessions *session.Store
}

// NewApp wires all routes.
func NewApp(h *handlers.Handlers, sessions *session.Store, reg *prometheus.Registry) *App {
	app := &App{mux: http.NewServeMux(), sessions: sessions}

	// Public.
	app.mux.HandleFunc("POST /api/login", h.Login)
	app.mux.HandleFunc("POST /api/logout", h.Logout)
	app.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	app.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Session.
	app.mux.Handle("GET /api/me", app.requireAuth(http.HandlerFunc(h.Me)))
	app.mux.Handle("GET /api/events", app.requireAuth(http.HandlerFunc(h.Events)))
	app.mux.Handle("GET /api/stats", app.requireAuth(http.HandlerFunc(h.Stats)))

	// Notifications and confirmations.
	app.mux.Handle("GET /api/notifications/current", app.requireAuth(http.HandlerFunc(h.CurrentNotification)))
	app.mux.Handle("POST /api/notifications/dismiss", app.requireAuth(http.HandlerFunc(h.DismissNotification)))
	app.mux.Handle("GET /api/confirmations/pending", app.requireAuth(http.HandlerFunc(h.PendingConfirmation)))
	app.mux.Handle("POST /api/confirmations/{id}", app.requireAuth(http.HandlerFunc(h.ResolveConfirmation)))

	// Destinations.
	app.mux.Handle("GET /api/destinations", app.requireAuth(http.HandlerFunc(h.ListDestinations)))
	app.mux.Handle("POST /api/destinations",
		app.requirePermission(access.PermManageDestinations, http.HandlerFunc(h.CreateDestination)))
	app.mux.Handle("PUT /api/destinations/{id}",
		app.requirePermission(access.PermManageDestinations, http.HandlerFunc(h.UpdateDestination)))
	app.mux.Handle("DELETE /api/destinations/{id}",
		app.requirePermission(access.PermManageDestinations, http.HandlerFunc(h.DeleteDestination)))
	app.mux.Handle("POST /api/destinations/{id}/images",
		app.requirePermission(access.PermManageDestinations, http.HandlerFunc(h.UploadDestinationImages)))
	app.mux.Handle("DELETE /api/destinations/{id}/images/{image_id}",
		app.requirePermission(access.PermManageDestinations, http.HandlerFunc(h.DeleteDestinationImage)))

	// Excursions.
	app.mux.Handle("GET /api/excursions", app.requireAuth(http.HandlerFunc(h.ListExcursions)))
	app.mux.Handle("POST /api/excursions",
		app.requirePermission(access.PermManageItineraries, http.HandlerFunc(h.CreateExcursion)))
	app.mux.Handle("PUT /api/excursions/{id}",
		app.requirePermission(access.PermManageItineraries, http.HandlerFunc(h.UpdateExcursion)))
	app.mux.Handle("DELETE /api/excursions/{id}",
		app.requirePermission(access.PermManageItineraries, http.HandlerFunc(h.DeleteExcursion)))

	// Clients.
	app.mux.Handle("GET /api/clients", app.requireAuth(http.HandlerFunc(h.ListClients)))
	app.mux.Handle("POST /api/clients", app.requireAuth(http.HandlerFunc(h.CreateClient)))
	app.mux.Handle("PUT /api/clients/{id}", app.requireAuth(http.HandlerFunc(h.UpdateClient)))
	app.mux.Handle("DELETE /api/clients/{id}",
		app.requirePermission(access.PermDeleteClients, http.HandlerFunc(h.DeleteClient)))

	// Sales.
	app.mux.Handle("GET /api/sales", app.requireAuth(http.HandlerFunc(h.ListSales)))
	app.mux.Handle("POST /api/sales", app.requireAuth(http.HandlerFunc(h.CreateSale)))
	app.mux.Handle("PUT /api/sales/{id}", app.requireAuth(http.HandlerFunc(h.UpdateSale)))
	app.mux.Handle("DELETE /api/sales/{id}", app.requireAuth(http.HandlerFunc(h.DeleteSale)))
	app.mux.Handle("GET /api/sales/{id}", app.requireAuth(http.HandlerFunc(h.SaleDetails)))
	app.mux.Handle("GET /sales/{id}/voucher", app.requireAuth(http.HandlerFunc(h.SaleVoucher)))

	// Users.
	app.mux.Handle("GET /api/users",
		app.requirePermission(access.PermManageUsers, http.HandlerFunc(h.ListUsers)))
	app.mux.Handle("POST /api/users",
		app.requirePermission(access.PermManageUsers, http.HandlerFunc(h.CreateUser)))
	app.mux.Handle("PUT /api/users/{id}",
		app.requirePermission(access.PermManageUsers, http.HandlerFunc(h.UpdateUser)))
	app.mux.Handle("DELETE /api/users/{id}",
		app.requirePermission(access.PermManageUsers, http.HandlerFunc(h.DeleteUser)))

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := auth.Middleware(withLanguage(a.mux))
	handler.ServeHTTP(w, r)
}

// withLanguage attaches the negotiated language to the request context.
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

// requireAuth rejects requests without a valid session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		user, err := a.sessions.Resolve(r.Context(), uid)
		if err != nil || user == nil || !user.Active {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePermission rejects sessions whose role lacks the permission.
func (a *App) requirePermission(p access.Permission, next http.Handler) http.Handler {
	return a.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := auth.UserIDFromContext(r.Context())
		user, err := a.sessions.Resolve(r.Context(), uid)
		if err != nil || user == nil || !access.Can(user.Role, p) {
			httpx.JSONError(w, http.StatusForbidden, "permission_denied", nil)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
