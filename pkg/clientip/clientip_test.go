package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/signupkit/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"remote addr", nil, "192.0.2.10:5555", "192.0.2.10"},
		{"remote addr without port", nil, "192.0.2.11", "192.0.2.11"},
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "203.0.113.1", "X-Forwarded-For": "198.51.100.1"}, "10.0.0.1:1", "203.0.113.1"},
		{"first valid forwarded", map[string]string{"X-Forwarded-For": "garbage, 198.51.100.2, 10.0.0.2"}, "10.0.0.1:1", "198.51.100.2"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.3"}, "10.0.0.1:1", "198.51.100.3"},
		{"invalid header falls through", map[string]string{"CF-Connecting-IP": "nope"}, "192.0.2.12:80", "192.0.2.12"},
		{"ipv6 normalized", nil, "[2001:db8:0:0::1]:443", "2001:db8::1"},
		{"nothing valid", nil, "not-an-ip", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r))
		})
	}
}

func TestMiddlewareAndKey(t *testing.T) {
	t.Parallel()

	var fromCtx, key string
	h := clientip.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		fromCtx = clientip.FromContext(r.Context())
		key = clientip.Key(r)
	}))
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "192.0.2.20:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.20", fromCtx)
	assert.Equal(t, "192.0.2.20", key)

	bare := httptest.NewRequest(http.MethodPost, "/", nil)
	bare.RemoteAddr = "192.0.2.21:1"
	assert.Equal(t, "192.0.2.21", clientip.Key(bare))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "192.0.2.1"))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
