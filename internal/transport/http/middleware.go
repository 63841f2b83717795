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
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pipeboard/pipeboard/internal/observability/logger"
)

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			slog.InfoContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// AdminContext resolves the admin session cookie, if any, and flags the
// request context. Requests without a session pass through unflagged;
// the list and report views simply render without admin affordances.
func (h *Handler) AdminContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := h.getSessionFromCookie(r)
		if sessionID == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := h.sessions.Get(r.Context(), sessionID)
		if err != nil {
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		if err := h.sessions.Refresh(r.Context(), sess.ID); err != nil {
			slog.ErrorContext(r.Context(), "failed to refresh admin session", logger.Error(err))
		}

		ctx := context.WithValue(r.Context(), adminKey, true)
		ctx = context.WithValue(ctx, sessionIDKey, sess.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests that do not carry a live admin session.
// Must run after AdminContext.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			respondError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
