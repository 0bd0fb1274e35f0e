package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.Header().Set("X-Seen-Path", r.URL.Path)
		w.Header().Set("X-Seen-Query", r.URL.RawQuery)
		if ck, err := r.Cookie("accessToken"); err == nil {
			w.Header().Set("X-Seen-Cookie", ck.Value)
		}
		_, _ = io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T) *echo.Echo {
	t.Helper()
	auth := upstream(t, "auth")
	inventory := upstream(t, "inventory")

	e := echo.New()
	require.NoError(t, Register(e, &Deps{AuthURL: auth.URL, InventoryURL: inventory.URL}))
	return e
}

func TestGateway_Routes(t *testing.T) {
	e := newGateway(t)

	tests := []struct {
		name     string
		method   string
		path     string
		upstream string
		seenPath string
	}{
		{name: "login", method: http.MethodPost, path: "/api/v1/auth/login", upstream: "auth", seenPath: "/login"},
		{name: "current user", method: http.MethodGet, path: "/api/v1/auth/user", upstream: "auth", seenPath: "/user"},
		{name: "list", method: http.MethodGet, path: "/api/v1/inventory", upstream: "inventory", seenPath: "/inventory"},
		{name: "patch", method: http.MethodPatch, path: "/api/v1/inventory/abc", upstream: "inventory", seenPath: "/inventory/abc"},
		{name: "search", method: http.MethodGet, path: "/api/v1/inventory/search?q=bolt", upstream: "inventory", seenPath: "/inventory/search"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.AddCookie(&http.Cookie{Name: "accessToken", Value: "tok"})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.upstream, rec.Header().Get("X-Upstream"))
			assert.Equal(t, tt.seenPath, rec.Header().Get("X-Seen-Path"))
			assert.Equal(t, "tok", rec.Header().Get("X-Seen-Cookie"))
		})
	}
}

func TestGateway_QueryForwarded(t *testing.T) {
	e := newGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/search?q=bolt", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "q=bolt", rec.Header().Get("X-Seen-Query"))
}

func TestGateway_UnknownRoute(t *testing.T) {
	e := newGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGateway_Health(t *testing.T) {
	e := newGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateway_UpstreamDown(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()

	e := echo.New()
	require.NoError(t, Register(e, &Deps{AuthURL: url, InventoryURL: url}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"message":"inventory service unavailable"}`, rec.Body.String())
}
