package middleware

import (
	"net/http"
	"strings"
)

// OriginSet is a normalized origin allow-list. Trailing slashes are ignored.
type OriginSet map[string]struct{}

func NewOriginSet(allowed []string) OriginSet {
	set := make(OriginSet, len(allowed))
	for _, o := range allowed {
		if o = normalizeOrigin(o); o != "" {
			set[o] = struct{}{}
		}
	}
	return set
}

// Allows reports whether origin is listed. An empty origin is never listed.
func (s OriginSet) Allows(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	_, ok := s[origin]
	return ok
}

func normalizeOrigin(o string) string {
	return strings.TrimRight(strings.TrimSpace(o), "/")
}

// CORS echoes the request Origin back only when it is in allowed. Requests
// from other origins are still served, just without CORS headers, so
// endpoints browsers do not guard with CORS (websockets) must check
// OriginSet themselves.
func CORS(allowed []string) func(http.Handler) http.Handler {
	set := NewOriginSet(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			w.Header().Add("Vary", "Origin")
			if set.Allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Expose-Headers", "X-Run-Id")
				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
					if h := r.Header.Get("Access-Control-Request-Headers"); h != "" {
						w.Header().Set("Access-Control-Allow-Headers", h)
					}
					w.Header().Set("Access-Control-Max-Age", "600")
				}
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
