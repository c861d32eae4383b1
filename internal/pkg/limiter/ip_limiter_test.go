package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestGetLimiter_SameBucketPerIP(t *testing.T) {
	l := NewIPRateLimiter(1, 1)

	if l.GetLimiter("10.0.0.1") != l.GetLimiter("10.0.0.1") {
		t.Error("same IP should get the same bucket")
	}
	if l.GetLimiter("10.0.0.1") == l.GetLimiter("10.0.0.2") {
		t.Error("different IPs should get different buckets")
	}
}

func TestGetLimiter_BurstExhaustion(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.01), 2)
	bucket := l.GetLimiter("10.0.0.1")

	if !bucket.Allow() || !bucket.Allow() {
		t.Fatal("burst requests should be allowed")
	}
	if bucket.Allow() {
		t.Error("request over burst should be denied")
	}

	if !l.GetLimiter("10.0.0.2").Allow() {
		t.Error("another IP must not be affected")
	}
}

func TestMiddleware_RejectsOverLimit(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.01), 1)

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func() int {
		r := httptest.NewRequest("POST", "/api/auth/register", nil)
		r.RemoteAddr = "10.0.0.1:54321"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	if got := request(); got != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", got, http.StatusOK)
	}
	if got := request(); got != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", got, http.StatusTooManyRequests)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{remoteAddr: "192.168.1.10:54321", want: "192.168.1.10"},
		{remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{remoteAddr: "192.168.1.10", want: "192.168.1.10"},
		{remoteAddr: "", want: "unknown_ip"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = tt.remoteAddr

		if got := ClientIP(r); got != tt.want {
			t.Errorf("ClientIP(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}
