// Copyright 2026 The Pipeboard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pipeboard/pipeboard/internal/admin"
	"github.com/pipeboard/pipeboard/internal/audit"
	"github.com/pipeboard/pipeboard/internal/client"
	"github.com/pipeboard/pipeboard/internal/dashboard"
	"github.com/pipeboard/pipeboard/internal/observability/logger"
	"github.com/pipeboard/pipeboard/internal/observability/metrics"
	"github.com/pipeboard/pipeboard/internal/report"
	"github.com/pipeboard/pipeboard/internal/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const dateParamLayout = "2006-01-02"

// Banner shown when the record store is unreachable and reads degrade
// to an empty view.
const degradedBanner = "Falha na conexão com o banco de dados."

// Handler holds HTTP handlers and dependencies
type Handler struct {
	clients       *client.Service
	sessions      *session.Service
	verifier      admin.CredentialVerifier
	auditLogger   audit.Logger
	instruments   *metrics.Instruments
	refresher     *client.Refresher
	sessionConfig SessionConfig
	windowDays    int
	now           func() time.Time
}

// SessionConfig holds admin session cookie configuration. Lifetime
// bounds the cookie MaxAge so it cannot outlive the server-side session.
type SessionConfig struct {
	CookieName     string
	CookiePath     string
	CookieSecure   bool
	CookieHTTPOnly bool
	Lifetime       time.Duration
}

// Option configures optional handler dependencies.
type Option func(*Handler)

// WithInstruments wires the domain counters.
func WithInstruments(ins *metrics.Instruments) Option {
	return func(h *Handler) { h.instruments = ins }
}

// WithRefresher wires the store reachability probe used for the
// degraded-read banner.
func WithRefresher(r *client.Refresher) Option {
	return func(h *Handler) { h.refresher = r }
}

// NewHandler creates a new HTTP handler
func NewHandler(
	clients *client.Service,
	sessions *session.Service,
	verifier admin.CredentialVerifier,
	auditLogger audit.Logger,
	sessionConfig SessionConfig,
	windowDays int,
	opts ...Option,
) *Handler {
	h := &Handler{
		clients:       clients,
		sessions:      sessions,
		verifier:      verifier,
		auditLogger:   auditLogger,
		sessionConfig: sessionConfig,
		windowDays:    windowDays,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Admin gate
		r.Post("/admin/login", h.AdminLogin)
		r.Post("/admin/logout", h.AdminLogout)
		r.Get("/admin/session", h.AdminSession)

		// Record store and reporting, admin-aware
		r.Group(func(r chi.Router) {
			r.Use(h.AdminContext)

			r.Post("/clients", h.CreateClient)
			r.Get("/clients", h.ListClients)
			r.Get("/reports/performance", h.PerformanceReport)
			r.Get("/dashboard", h.Dashboard)

			r.With(h.RequireAdmin).Delete("/clients/{id}", h.DeleteClient)
		})
	})

	return r
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "pipeboard",
	})
}

// CreateClientRequest carries the registration form fields.
type CreateClientRequest struct {
	LegalName      string `json:"razao_social"`
	TradeName      string `json:"nome_fantasia"`
	City           string `json:"cidade"`
	State          string `json:"estado"`
	Representative string `json:"vendedor"`
}

// CreateClient handles client registration
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.clients.Register(r.Context(), client.RegisterInput{
		LegalName:      req.LegalName,
		TradeName:      req.TradeName,
		City:           req.City,
		State:          req.State,
		Representative: req.Representative,
	})
	if err != nil {
		var verr *client.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":          verr.Error(),
				"missing_fields": verr.Missing,
				"invalid_fields": verr.Invalid,
			})
		case errors.Is(err, client.ErrStoreUnavailable):
			respondError(w, http.StatusServiceUnavailable, degradedBanner)
		default:
			slog.ErrorContext(r.Context(), "failed to register client record", logger.Error(err))
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if h.instruments != nil {
		h.instruments.RecordsCreated.Add(r.Context(), 1)
	}

	respondJSON(w, http.StatusCreated, record)
}

// ListClients returns the paginated client table. When the store is
// unreachable the table degrades to an empty view with a banner instead
// of an error, so the front end keeps rendering.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	records, degraded := h.readRecords(r)
	table := dashboard.BuildTable(records, page, IsAdmin(r.Context()))

	resp := map[string]any{
		"table":    table,
		"degraded": degraded,
	}
	if degraded {
		resp["banner"] = degradedBanner
	}
	respondJSON(w, http.StatusOK, resp)
}

// DeleteClient soft-deletes a record. Admin only.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.clients.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, client.ErrRecordNotFound):
			respondError(w, http.StatusNotFound, "client record not found")
		case errors.Is(err, client.ErrStoreUnavailable):
			respondError(w, http.StatusServiceUnavailable, degradedBanner)
		default:
			slog.ErrorContext(r.Context(), "failed to delete client record",
				logger.Error(err), logger.RecordID(id))
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if h.instruments != nil {
		h.instruments.RecordsDeleted.Add(r.Context(), 1)
	}

	slog.InfoContext(r.Context(), "client record deleted",
		logger.RecordID(id), logger.SessionID(GetSessionID(r.Context())))

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Registro %d excluído com sucesso.", id),
	})
}

// PerformanceReport returns the per-representative chart panels and
// KPIs for the requested range and frequency.
func (h *Handler) PerformanceReport(w http.ResponseWriter, r *http.Request) {
	rng, freq, err := h.parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, degraded := h.readRecords(r)
	rep := report.Build(records, rng, freq)
	panels := dashboard.BuildPanels(rep)

	if h.instruments != nil {
		h.instruments.ReportRequests.Add(r.Context(), 1)
	}

	resp := map[string]any{
		"frequency": freq,
		"start":     rng.Start.Format(dateParamLayout),
		"end":       rng.End.Format(dateParamLayout),
		"panels":    panels,
		"degraded":  degraded,
	}
	if degraded {
		resp["banner"] = degradedBanner
	}
	respondJSON(w, http.StatusOK, resp)
}

// Dashboard returns the table and the chart panels in one response,
// the unit of a full redraw.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rng, freq, err := h.parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := 1
	if p, perr := strconv.Atoi(r.URL.Query().Get("page")); perr == nil && p > 0 {
		page = p
	}

	records, degraded := h.readRecords(r)
	table := dashboard.BuildTable(records, page, IsAdmin(r.Context()))
	panels := dashboard.BuildPanels(report.Build(records, rng, freq))

	resp := map[string]any{
		"table":     table,
		"panels":    panels,
		"frequency": freq,
		"start":     rng.Start.Format(dateParamLayout),
		"end":       rng.End.Format(dateParamLayout),
		"degraded":  degraded,
	}
	if degraded {
		resp["banner"] = degradedBanner
	}
	respondJSON(w, http.StatusOK, resp)
}

// AdminLoginRequest represents admin credentials
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin walks the gate through the login flow and mints an admin
// session on success. A mismatch keeps the modal open on the client,
// which re-submits against a fresh gate.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gate := admin.NewGate(h.verifier)
	gate.RequestAdmin()

	if err := gate.Submit(req.Username, req.Password); err != nil {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeAdminLoginFailed,
			Resource:  "admin_session",
			IPAddress: getIPAddress(r),
			UserAgent: r.UserAgent(),
			Metadata:  map[string]any{"username": req.Username},
		})
		if h.instruments != nil {
			h.instruments.AdminLoginFailures.Add(r.Context(), 1)
		}
		respondError(w, http.StatusUnauthorized, "Usuário ou senha inválidos.")
		return
	}

	sess, err := h.sessions.Create(r.Context(), getIPAddress(r), r.UserAgent())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create admin session", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.setSessionCookie(w, sess.ID)

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeAdminLoginOK,
		ActorID:   req.Username,
		Resource:  "admin_session",
		IPAddress: getIPAddress(r),
		UserAgent: r.UserAgent(),
		Metadata:  map[string]any{"session_id": sess.ID},
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"state": gate.State(),
	})
}

// AdminLogout destroys the admin session and hides the delete column.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.getSessionFromCookie(r)
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if sess, err := h.sessions.Get(r.Context(), sessionID); err == nil {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeAdminLogout,
			Resource:  "admin_session",
			IPAddress: getIPAddress(r),
			UserAgent: r.UserAgent(),
			Metadata:  map[string]any{"session_id": sess.ID},
		})
		h.sessions.Destroy(r.Context(), sessionID)
	}

	h.clearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]any{
		"state": admin.StateLoggedOut,
	})
}

// AdminSession reports the gate state for the request's cookie.
func (h *Handler) AdminSession(w http.ResponseWriter, r *http.Request) {
	state := admin.StateLoggedOut
	if sessionID := h.getSessionFromCookie(r); sessionID != "" {
		if _, err := h.sessions.Get(r.Context(), sessionID); err == nil {
			state = admin.StateLoggedIn
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"state": state})
}

// readRecords reads the active set, degrading to an empty snapshot when
// the store is unreachable.
func (h *Handler) readRecords(r *http.Request) ([]*client.Record, bool) {
	records, err := h.clients.ListActive(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read client records", logger.Error(err))
		return nil, true
	}
	degraded := h.refresher != nil && h.refresher.Degraded()
	return records, degraded
}

func (h *Handler) parseFilter(r *http.Request) (report.Range, report.Frequency, error) {
	q := r.URL.Query()

	var start, end *time.Time
	if s := q.Get("start"); s != "" {
		t, err := time.ParseInLocation(dateParamLayout, s, time.UTC)
		if err != nil {
			return report.Range{}, "", fmt.Errorf("invalid start date %q, want YYYY-MM-DD", s)
		}
		start = &t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.ParseInLocation(dateParamLayout, s, time.UTC)
		if err != nil {
			return report.Range{}, "", fmt.Errorf("invalid end date %q, want YYYY-MM-DD", s)
		}
		end = &t
	}

	rng := report.Window(start, end, h.now().UTC(), h.windowDays)
	return rng, report.ParseFrequency(q.Get("freq")), nil
}

// Helper functions
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionConfig.CookieName,
		Value:    sessionID,
		Path:     h.sessionConfig.CookiePath,
		Secure:   h.sessionConfig.CookieSecure,
		HttpOnly: h.sessionConfig.CookieHTTPOnly,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessionConfig.Lifetime.Seconds()),
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   h.sessionConfig.CookieName,
		Value:  "",
		Path:   h.sessionConfig.CookiePath,
		MaxAge: -1,
	})
}

func (h *Handler) getSessionFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(h.sessionConfig.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
