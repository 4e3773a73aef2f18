package service

import (
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

var (
	errInvalidRequest = errors.New("invalid request")
	errInvalidHost    = errors.New("invalid host")
	errInvalidOrigin  = errors.New("invalid origin")
)

// hostGuard blocks DNS rebinding: the Host header, and the Origin header when
// present, must name loopback or an allow-listed host. An entry of the form
// "*.studio.local" admits every subdomain of studio.local.
type hostGuard struct {
	exact    map[string]struct{}
	suffixes []string
}

func newHostGuard(hosts []string) hostGuard {
	guard := hostGuard{exact: make(map[string]struct{}, len(hosts))}
	for _, entry := range hosts {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "":
		case strings.HasPrefix(entry, "*."):
			guard.suffixes = append(guard.suffixes, entry[1:])
		default:
			guard.exact[entry] = struct{}{}
		}
	}
	return guard
}

// check validates the Host and Origin headers of r.
func (g hostGuard) check(r *http.Request) error {
	if r == nil {
		return errInvalidRequest
	}
	if !g.allows(r.Host) {
		return errInvalidHost
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" || !g.allows(parsed.Host) {
		return errInvalidOrigin
	}
	return nil
}

// allows reports whether a Host or Origin authority names a permitted host.
func (g hostGuard) allows(authority string) bool {
	host, ok := hostname(authority)
	if !ok {
		return false
	}
	if isLoopbackHost(host) {
		return true
	}
	if _, ok := g.exact[host]; ok {
		return true
	}
	for _, suffix := range g.suffixes {
		if len(host) > len(suffix) && strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// isLoopbackHost reports whether host is localhost or a loopback address.
func isLoopbackHost(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "localhost" {
		return true
	}
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.IsLoopback()
}

// hostname strips the port and IPv6 brackets from an authority and
// lowercases the result.
func hostname(authority string) (string, bool) {
	authority = strings.TrimSpace(authority)
	if authority == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(authority); err == nil {
		return strings.ToLower(host), host != ""
	}
	if strings.HasPrefix(authority, "[") {
		if !strings.HasSuffix(authority, "]") {
			return "", false
		}
		authority = authority[1 : len(authority)-1]
	}
	return strings.ToLower(authority), authority != ""
}

// authorizeRequest checks the bearer token when one is configured and writes
// a 401 when it does not match.
func (t *HTTPTransport) authorizeRequest(w http.ResponseWriter, r *http.Request) bool {
	if t.authToken == "" {
		return true
	}
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		writeUnauthorized(w, "authorization required")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(t.authToken)) != 1 {
		writeUnauthorized(w, "invalid access token")
		return false
	}
	return true
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="resolve-mcp"`)
	http.Error(w, message, http.StatusUnauthorized)
}

// handleHealth answers GET /mcp/health.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := t.guard.check(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		t.logger.Warn().Err(err).Msg("failed to write health response")
	}
}
