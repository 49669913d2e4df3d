package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apexhome/products-manager/internal/allocator"
	"github.com/apexhome/products-manager/internal/apisrv/products"
	"github.com/apexhome/products-manager/internal/apisrv/serialization"
	"github.com/apexhome/products-manager/internal/auth/jwt"
	"github.com/apexhome/products-manager/internal/cache"
	"github.com/apexhome/products-manager/internal/dependency/mocks"
	"github.com/apexhome/products-manager/internal/engine"
	"github.com/apexhome/products-manager/internal/lock"
	"github.com/apexhome/products-manager/internal/metrics"
	"github.com/apexhome/products-manager/internal/ratelimit"
	"github.com/apexhome/products-manager/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, health error) http.Handler {
	rep := mocks.NewRepository(t)
	reg := mocks.NewRegistry(t)
	rep.On("Registry").Return(reg).Maybe()

	svc := registry.New(rep, cache.NewRegistryCache(reg, cache.Config{}), lock.NewLocal(), nil)
	eng := engine.New(rep, allocator.NewMemory(), svc, nil)
	rl := ratelimit.NewMultiKeyLimiter(ratelimit.Config{})
	t.Cleanup(rl.Stop)
	ja, err := jwt.New(&jwt.Config{JWTSecret: strings.Repeat("k", 32)})
	require.NoError(t, err)

	s := New(&Config{Port: "0", AllowedOrigins: []string{"https://admin.apexhome.example"}})
	return s.router(&Handlers{
		Products:      products.New(eng, rl),
		Serialization: serialization.New(eng, svc, nil, rl),
		JWT:           ja,
		Metrics:       metrics.New(metrics.Config{Prefix: "test"}),
		Health:        func(context.Context) error { return health },
	})
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	w = httptest.NewRecorder()
	newRouter(t, errors.New("db down")).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newRouter(t, nil)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/serialization/suppliers", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS(t *testing.T) {
	h := newRouter(t, nil)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://admin.apexhome.example", true},
		{"http://localhost:3000", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/products/next-sku", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if tt.allowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestStartStop(t *testing.T) {
	s := New(&Config{Address: "127.0.0.1", Port: "0"})
	rl := ratelimit.NewMultiKeyLimiter(ratelimit.Config{})
	defer rl.Stop()
	ja, err := jwt.New(&jwt.Config{JWTSecret: strings.Repeat("k", 32)})
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background(), &Handlers{
		Products:      products.New(nil, rl),
		Serialization: serialization.New(nil, nil, nil, rl),
		JWT:           ja,
		Health:        func(context.Context) error { return nil },
	}))
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}
