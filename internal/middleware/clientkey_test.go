package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientKey_UsesFirstForwardedForEntry(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		want      string
	}{
		{name: "single entry", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "multiple entries take first", forwarded: "203.0.113.7, 10.0.0.1, 172.16.0.1", want: "203.0.113.7"},
		{name: "whitespace trimmed", forwarded: "  203.0.113.7 , 10.0.0.1", want: "203.0.113.7"},
		{name: "missing header", forwarded: "", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := ClientKey(req); got != tt.want {
				t.Errorf("ClientKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
