package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"customizer-console/internal/httpserver"
	"customizer-console/internal/models"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", session.ErrNoSession
	}
	return val, nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// testConsole wires a full router against a scripted upstream so the
// guard chain is exercised exactly as deployed.
type testConsole struct {
	router   http.Handler
	sessions *session.Store
	hits     *atomic.Int64
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()
	hits := &atomic.Int64{}
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(up.Close)

	sessions := session.NewStore(newMemKV(), "router-test-secret", time.Hour)
	return &testConsole{
		router:   httpserver.NewRouter(upstream.New(up.URL), sessions, zap.NewNop().Sugar()),
		sessions: sessions,
		hits:     hits,
	}
}

func (c *testConsole) loginAs(t *testing.T, role string) *http.Cookie {
	t.Helper()
	cookie, err := c.sessions.Create(context.Background(), "upstream-token", models.Identity{
		Name: "Visitor", Email: "visitor@example.com", Role: role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: cookie}
}

func TestRouterGuards(t *testing.T) {
	t.Run("no session redirects to login without touching the upstream", func(t *testing.T) {
		console := newTestConsole(t)
		req := httptest.NewRequest(http.MethodGet, "/console/dashboard", nil)
		w := httptest.NewRecorder()
		console.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp struct {
			Redirect string `json:"redirect"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, session.LoginRoute, resp.Redirect)
		assert.EqualValues(t, 0, console.hits.Load())
	})

	t.Run("store owner is denied the admin surface without a resource fetch", func(t *testing.T) {
		console := newTestConsole(t)
		req := httptest.NewRequest(http.MethodGet, "/console/users", nil)
		req.AddCookie(console.loginAs(t, models.RoleUser))
		w := httptest.NewRecorder()
		console.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), session.DenialMessage)
		assert.EqualValues(t, 0, console.hits.Load())
	})

	t.Run("superadmin passes both guards", func(t *testing.T) {
		console := newTestConsole(t)
		req := httptest.NewRequest(http.MethodGet, "/console/users", nil)
		req.AddCookie(console.loginAs(t, models.RoleSuperadmin))
		w := httptest.NewRecorder()
		console.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, console.hits.Load())
	})

	t.Run("store owner keeps the shared surface", func(t *testing.T) {
		console := newTestConsole(t)
		req := httptest.NewRequest(http.MethodGet, "/console/configuration", nil)
		req.AddCookie(console.loginAs(t, models.RoleUser))
		w := httptest.NewRecorder()
		console.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, console.hits.Load())
	})

	t.Run("health endpoint is open", func(t *testing.T) {
		console := newTestConsole(t)
		w := httptest.NewRecorder()
		console.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
