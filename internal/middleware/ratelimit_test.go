package middleware

import (
	"net/http"
	"testing"
)

func TestConnectionCap(t *testing.T) {
	rl := NewIPRateLimiter(2, 100, 100)

	if !rl.ConnectAllowed("1.2.3.4") || !rl.ConnectAllowed("1.2.3.4") {
		t.Fatalf("expected first two connections to be allowed")
	}
	if rl.ConnectAllowed("1.2.3.4") {
		t.Fatalf("expected third connection to be rejected")
	}
	// Other IPs are unaffected.
	if !rl.ConnectAllowed("5.6.7.8") {
		t.Fatalf("expected separate IP to be allowed")
	}

	rl.Disconnect("1.2.3.4")
	if !rl.ConnectAllowed("1.2.3.4") {
		t.Fatalf("expected slot to free up after disconnect")
	}
}

func TestMessageBurstLimit(t *testing.T) {
	rl := NewIPRateLimiter(4, 1, 3)

	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.MessageAllowed("1.2.3.4") {
			allowed++
		}
	}
	if allowed != 3 {
		t.Fatalf("expected exactly the burst of 3 messages, got %d", allowed)
	}
}

func TestRealIP(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "9.9.9.9:1234"
	if got := RealIP(r); got != "9.9.9.9" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	if got := RealIP(r); got != "1.1.1.1" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}
