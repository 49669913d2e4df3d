package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remote     string
		headers    map[string]string
		want       string
	}{
		{"remote addr", false, "10.0.0.7:51234", nil, "10.0.0.7"},
		{"ipv6 remote addr", false, "[::1]:8080", nil, "::1"},
		{"untrusted forwarded for", false, "10.0.0.7:51234", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "10.0.0.7"},
		{"forwarded for", true, "10.0.0.7:51234", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, "1.2.3.4"},
		{"real ip", true, "10.0.0.7:51234", map[string]string{"X-Real-IP": "5.6.7.8"}, "5.6.7.8"},
		{"cloudflare", true, "10.0.0.7:51234", map[string]string{"CF-Connecting-IP": "9.9.9.9"}, "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := ClientIdentifier(tt.trustProxy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetClientIP(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "unknown", GetClientIP(context.Background()))
}
