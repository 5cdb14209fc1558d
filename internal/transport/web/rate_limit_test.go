package web

import (
	"net/http/httptest"
	"testing"
)

// TestGetIPWithTrustedProxies tests the secure IP extraction with trusted proxy validation.
func TestGetIPWithTrustedProxies(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		xForwardedFor  string
		xRealIP        string
		trustedProxies []string
		expectedIP     string
	}{
		{
			name:           "Direct connection (no proxy)",
			remoteAddr:     "192.168.1.100:12345",
			trustedProxies: []string{},
			expectedIP:     "192.168.1.100",
		},
		{
			name:           "X-Forwarded-For but NO trusted proxies (secure default)",
			remoteAddr:     "10.0.0.1:8080",
			xForwardedFor:  "203.0.113.45",
			trustedProxies: []string{},
			expectedIP:     "10.0.0.1",
		},
		{
			name:           "X-Forwarded-For with trusted proxy",
			remoteAddr:     "10.0.0.1:8080",
			xForwardedFor:  "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			expectedIP:     "203.0.113.45",
		},
		{
			name:           "X-Forwarded-For with multiple IPs and trusted proxy",
			remoteAddr:     "10.0.0.1:8080",
			xForwardedFor:  "203.0.113.45, 198.51.100.20, 192.0.2.30",
			trustedProxies: []string{"10.0.0.1"},
			expectedIP:     "203.0.113.45",
		},
		{
			name:           "X-Real-IP with trusted proxy",
			remoteAddr:     "10.0.0.1:8080",
			xRealIP:        "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			expectedIP:     "203.0.113.45",
		},
		{
			name:           "Untrusted proxy attempting to spoof IP",
			remoteAddr:     "99.99.99.99:8080",
			xForwardedFor:  "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			expectedIP:     "99.99.99.99",
		},
		{
			name:           "IPv6 address",
			remoteAddr:     "[2001:db8::1]:12345",
			trustedProxies: []string{},
			expectedIP:     "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			req.RemoteAddr = tt.remoteAddr

			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			result := getIPWithTrustedProxies(req, tt.trustedProxies)

			if result != tt.expectedIP {
				t.Errorf("getIPWithTrustedProxies() = %s, want %s", result, tt.expectedIP)
			}
		})
	}
}

func TestGetIPWithTrustedProxies_EdgeCases(t *testing.T) {
	t.Run("Malformed RemoteAddr (no port)", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com", nil)
		req.RemoteAddr = "192.168.1.1"

		result := getIPWithTrustedProxies(req, []string{})
		if result != "192.168.1.1" {
			t.Errorf("Expected 192.168.1.1, got %s", result)
		}
	})

	t.Run("Nil trusted proxies (secure default)", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com", nil)
		req.RemoteAddr = "10.0.0.1:8080"
		req.Header.Set("X-Forwarded-For", "203.0.113.45")

		result := getIPWithTrustedProxies(req, nil)
		if result != "10.0.0.1" {
			t.Errorf("Expected 10.0.0.1 (secure default), got %s", result)
		}
	})

	t.Run("Invalid IP in X-Forwarded-For with trusted proxy", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com", nil)
		req.RemoteAddr = "10.0.0.1:8080"
		req.Header.Set("X-Forwarded-For", "not-an-ip")
		req.Header.Set("X-Real-IP", "203.0.113.45")

		result := getIPWithTrustedProxies(req, []string{"10.0.0.1"})
		if result != "203.0.113.45" && result != "10.0.0.1" {
			t.Errorf("Expected fallback IP, got %s", result)
		}
	})
}

// TestHashIP tests the IP hashing function.
func TestHashIP(t *testing.T) {
	t.Run("Same IP produces same hash", func(t *testing.T) {
		ip := "192.168.1.1"
		if hashIP(ip) != hashIP(ip) {
			t.Error("Same IP should produce consistent hash")
		}
	})

	t.Run("Different IPs produce different hashes", func(t *testing.T) {
		if hashIP("192.168.1.1") == hashIP("192.168.1.2") {
			t.Error("Different IPs should produce different hashes")
		}
	})

	t.Run("Hash is deterministic (SHA-256)", func(t *testing.T) {
		hash := hashIP("203.0.113.45")
		if len(hash) != 64 {
			t.Errorf("Expected hash length 64, got %d", len(hash))
		}
	})
}
