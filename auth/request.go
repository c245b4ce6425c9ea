package auth

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Request is the parsed-request abstraction the resolver operates on.
// It owns no wire format; hosts build it from whatever transport they use.
type Request struct {
	// Method is the request method (e.g. "GET").
	Method string

	// Path is the request path.
	Path string

	// RemoteAddr is the peer address ("host:port" or bare host).
	RemoteAddr string

	// Headers contains the request headers.
	Headers http.Header

	// Cookies maps cookie names to values.
	Cookies map[string]string

	// Query contains the parsed query string.
	Query url.Values
}

// FromHTTP builds a Request from a net/http request.
func FromHTTP(r *http.Request) *Request {
	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}
	return &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		Headers:    r.Header,
		Cookies:    cookies,
		Query:      r.URL.Query(),
	}
}

// Header returns the first value for a header, or empty string.
func (r *Request) Header(key string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// Cookie returns the value of a named cookie, or empty string.
func (r *Request) Cookie(name string) string {
	if r.Cookies == nil {
		return ""
	}
	return r.Cookies[name]
}

// QueryValue returns the first non-empty value among the given query keys.
func (r *Request) QueryValue(keys ...string) string {
	if r.Query == nil {
		return ""
	}
	for _, k := range keys {
		if v := r.Query.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// BearerToken returns the token from an "Authorization: Bearer" header,
// or empty string when the header is absent or uses another scheme.
func (r *Request) BearerToken() string {
	header := strings.TrimSpace(r.Header("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Origin returns the request origin header.
func (r *Request) Origin() string {
	return r.Header("Origin")
}

// UserAgent returns the request user agent.
func (r *Request) UserAgent() string {
	return r.Header("User-Agent")
}

// ClientIP derives the client address, honoring proxy headers in order:
// X-Forwarded-For (first hop), X-Real-IP, then the remote address.
func (r *Request) ClientIP() string {
	if xff := r.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
