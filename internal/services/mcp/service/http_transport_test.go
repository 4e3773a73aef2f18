package service

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestTransport(cfg HTTPConfig) *HTTPTransport {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0"}, nil)
	return NewHTTPTransport(server, cfg)
}

func setLocalhostHeaders(req *http.Request) {
	req.Host = "localhost:8081"
}

func TestIsLoopbackHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"127.0.0.1", true},
		{"127.0.0.2", true},
		{"::1", true},
		{" localhost ", true},
		{"example.com", false},
		{"10.0.0.1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := isLoopbackHost(tt.host); got != tt.want {
				t.Errorf("isLoopbackHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestHostname(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"localhost:8081", "localhost", true},
		{"Studio.Local:443", "studio.local", true},
		{"[::1]:8081", "::1", true},
		{"[::1]", "::1", true},
		{"::1", "::1", true},
		{"studio.local", "studio.local", true},
		{"", "", false},
		{"  ", "", false},
		{"[::1", "", false},
		{":8081", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := hostname(tt.input)
			if ok != tt.wantOk {
				t.Errorf("hostname(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("hostname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewHTTPTransportDefaults(t *testing.T) {
	transport := newTestTransport(HTTPConfig{AllowedHosts: []string{" Studio.Local ", "", "*.Bay.Local"}})
	if transport.addr != defaultHTTPAddr {
		t.Errorf("addr = %q, want %q", transport.addr, defaultHTTPAddr)
	}
	if _, ok := transport.guard.exact["studio.local"]; !ok || len(transport.guard.exact) != 1 {
		t.Errorf("exact hosts = %v", transport.guard.exact)
	}
	if len(transport.guard.suffixes) != 1 || transport.guard.suffixes[0] != ".bay.local" {
		t.Errorf("suffixes = %v", transport.guard.suffixes)
	}
}

func TestHostGuardAllows(t *testing.T) {
	guard := newHostGuard([]string{"studio.local", "*.bay.local"})
	tests := []struct {
		authority string
		want      bool
	}{
		{"localhost:8081", true},
		{"[::1]:8081", true},
		{"127.0.0.1", true},
		{"STUDIO.local:8081", true},
		{"edit1.bay.local", true},
		{"bay.local", false},
		{"evilbay.local", false},
		{"evil.com:8081", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.authority, func(t *testing.T) {
			if got := guard.allows(tt.authority); got != tt.want {
				t.Errorf("allows(%q) = %v, want %v", tt.authority, got, tt.want)
			}
		})
	}

	if newHostGuard(nil).allows("studio.local") {
		t.Error("expected empty allow list to admit loopback only")
	}
}

func TestHostGuardCheck(t *testing.T) {
	guard := newHostGuard(nil)

	t.Run("nil request", func(t *testing.T) {
		if err := guard.check(nil); err == nil {
			t.Fatal("expected error for nil request")
		}
	})

	tests := []struct {
		name    string
		host    string
		origin  string
		wantErr error
	}{
		{name: "localhost no origin", host: "localhost:8081"},
		{name: "localhost with origin", host: "localhost:8081", origin: "http://localhost:8081"},
		{name: "invalid host", host: "evil.com", wantErr: errInvalidHost},
		{name: "invalid origin", host: "localhost:8081", origin: "http://evil.com", wantErr: errInvalidOrigin},
		{name: "opaque origin", host: "localhost:8081", origin: "null", wantErr: errInvalidOrigin},
		{name: "malformed origin", host: "localhost:8081", origin: ":::bad", wantErr: errInvalidOrigin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if err := guard.check(req); err != tt.wantErr {
				t.Fatalf("check = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeRequest(t *testing.T) {
	t.Run("no token configured", func(t *testing.T) {
		transport := newTestTransport(HTTPConfig{})
		w := httptest.NewRecorder()
		if !transport.authorizeRequest(w, httptest.NewRequest(http.MethodPost, "/mcp", nil)) {
			t.Fatal("expected request to pass without a configured token")
		}
	})

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "matching token", header: "Bearer secret", want: true},
		{name: "scheme is case-insensitive", header: "bearer secret", want: true},
		{name: "missing header"},
		{name: "wrong scheme", header: "Basic secret"},
		{name: "empty token", header: "Bearer  "},
		{name: "wrong token", header: "Bearer guess"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newTestTransport(HTTPConfig{AuthToken: "secret"})
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			if got := transport.authorizeRequest(w, req); got != tt.want {
				t.Fatalf("authorizeRequest = %v, want %v", got, tt.want)
			}
			if !tt.want {
				if w.Code != http.StatusUnauthorized {
					t.Errorf("expected 401, got %d", w.Code)
				}
				if w.Header().Get("WWW-Authenticate") == "" {
					t.Error("expected WWW-Authenticate header")
				}
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	transport := newTestTransport(HTTPConfig{})

	t.Run("GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
		setLocalhostHeaders(req)
		w := httptest.NewRecorder()
		transport.handleHealth(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "OK" {
			t.Errorf("expected 200 OK, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp/health", nil)
		setLocalhostHeaders(req)
		w := httptest.NewRecorder()
		transport.handleHealth(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", w.Code)
		}
		if w.Header().Get("Allow") != http.MethodGet {
			t.Errorf("Allow = %q, want GET", w.Header().Get("Allow"))
		}
	})

	t.Run("foreign host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
		req.Host = "evil.com"
		w := httptest.NewRecorder()
		transport.handleHealth(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestHandlerGuardsMCPEndpoint(t *testing.T) {
	handler := newTestTransport(HTTPConfig{AuthToken: "secret"}).Handler()

	t.Run("foreign host rejected before auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Host = "evil.com"
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		setLocalhostHeaders(req)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestHTTPTransportServesAndShutsDown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	transport := newTestTransport(HTTPConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- transport.serve(ctx, listener)
	}()

	url := "http://" + listener.Addr().String() + "/mcp/health"
	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		req.Host = "localhost"
		resp, err = http.DefaultClient.Do(req)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("transport did not shut down")
	}
}
