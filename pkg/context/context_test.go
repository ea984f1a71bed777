package ctxutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewContextWithRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "10.0.0.5:4321"

	ctx := NewContextWithRequest(context.Background(), req, "handler", "Login")

	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("request id = %q, want req-123", got)
	}
	if got := GetClientIP(ctx); got != "10.0.0.5" {
		t.Errorf("client ip = %q, want 10.0.0.5", got)
	}
	if got := GetUserAgent(ctx); got != "test-agent" {
		t.Errorf("user agent = %q, want test-agent", got)
	}
	if GetModule(ctx) != "handler" || GetFunction(ctx) != "Login" {
		t.Errorf("module/function = %q/%q", GetModule(ctx), GetFunction(ctx))
	}
	if GetStartTime(ctx).IsZero() {
		t.Error("Expected start time to be set")
	}
}

func TestNewContextWithRequest_KeepsExistingValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "from-header")

	base := WithRequestID(context.Background(), "from-middleware")
	base = WithUserID(base, 42)

	ctx := NewContextWithRequest(base, req, "handler", "GetProfile")

	if got := GetRequestID(ctx); got != "from-middleware" {
		t.Errorf("request id = %q, want from-middleware", got)
	}
	if id, ok := GetUserID(ctx); !ok || id != 42 {
		t.Errorf("user id = %d,%v want 42,true", id, ok)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1:80", "192.168.1.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "3.3.3.3:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "4.4.4.4"}, "3.3.3.3:1", "4.4.4.4"},
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "5.5.5.5", "X-Real-IP": "4.4.4.4"}, "3.3.3.3:1", "5.5.5.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
