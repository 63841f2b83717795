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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard/pipeboard/internal/session"
)

func adminContextHandler(t *testing.T) (*Handler, *session.Service) {
	t.Helper()
	sessions := session.NewService(12*time.Hour, 30*time.Minute)
	return &Handler{
		sessions: sessions,
		sessionConfig: SessionConfig{
			CookieName: "pipeboard_admin",
			CookiePath: "/",
			Lifetime:   12 * time.Hour,
		},
	}, sessions
}

func TestAdminContext_FlagsLiveSession(t *testing.T) {
	h, sessions := adminContextHandler(t)
	sess, err := sessions.Create(context.Background(), "10.0.0.1", "test-agent")
	require.NoError(t, err)

	var gotAdmin bool
	var gotSessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdmin = IsAdmin(r.Context())
		gotSessionID = GetSessionID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.AddCookie(&http.Cookie{Name: "pipeboard_admin", Value: sess.ID})
	h.AdminContext(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, gotAdmin)
	assert.Equal(t, sess.ID, gotSessionID)
}

func TestAdminContext_NoCookiePassesThrough(t *testing.T) {
	h, _ := adminContextHandler(t)

	var gotAdmin bool
	var gotSessionID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdmin = IsAdmin(r.Context())
		gotSessionID = GetSessionID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	h.AdminContext(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, gotAdmin)
	assert.Empty(t, gotSessionID)
}

func TestAdminContext_StaleCookieIsCleared(t *testing.T) {
	h, _ := adminContextHandler(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, IsAdmin(r.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.AddCookie(&http.Cookie{Name: "pipeboard_admin", Value: "gone"})
	rec := httptest.NewRecorder()
	h.AdminContext(next).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "pipeboard_admin", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
