package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"customizer-console/internal/models"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

// fakeUpstream is a scripted stand-in for the customizer API. It counts
// every call so tests can assert the write-then-refetch contract by call
// count, and captures bodies so payload shapes can be checked.
type fakeUpstream struct {
	*httptest.Server

	mu     sync.Mutex
	calls  map[string]int
	bodies map[string][][]byte
	routes map[string]http.HandlerFunc
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{
		calls:  map[string]int{},
		bodies: map[string][][]byte{},
		routes: map[string]http.HandlerFunc{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		f.mu.Lock()
		f.calls[key]++
		if len(body) > 0 {
			f.bodies[key] = append(f.bodies[key], body)
		}
		handler, ok := f.routes[key]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *fakeUpstream) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeUpstream) respondJSON(method, path string, v any) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})
}

func (f *fakeUpstream) respondOK(method, path string) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (f *fakeUpstream) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *fakeUpstream) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeUpstream) lastBody(method, path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	bodies := f.bodies[method+" "+path]
	if len(bodies) == 0 {
		return nil
	}
	return bodies[len(bodies)-1]
}

func (f *fakeUpstream) client() *upstream.Client {
	return upstream.New(f.URL)
}

func discardLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func superadminSession() session.Session {
	return session.Session{
		Token:    "test-token",
		Identity: models.Identity{Name: "Admin", Email: "admin@example.com", Role: models.RoleSuperadmin},
	}
}

func userSession() session.Session {
	return session.Session{
		Token:    "test-token",
		Identity: models.Identity{Name: "Owner", Email: "owner@example.com", Role: models.RoleUser},
	}
}

func withSession(r *http.Request, s session.Session) *http.Request {
	return r.WithContext(session.WithSession(r.Context(), s))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Status string `json:"status"`
		Error  string `json:"error"`
		Data   T      `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response envelope: %v", err)
	}
	return envelope.Data
}
