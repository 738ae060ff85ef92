package middleware

import (
	"net/http"
	"strings"

	"github.com/kristjin/posts/pkg"
)

// ContentNegotiation rejects requests before any handler work is done:
//   - 406 when the Accept header does not admit application/json
//   - 415 when a request that carries a body is not application/json
//
// It has to sit in front of payload validation and persistence, so that
// negotiation errors always win over payload errors.
func ContentNegotiation() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !acceptsJSON(r.Header.Get("Accept")) {
				pkg.WriteJSONMessage(w, "Request must accept application/json data", http.StatusNotAcceptable)
				return
			}

			if requestHasBody(r.Method) && mediaType(r.Header.Get("Content-Type")) != "application/json" {
				pkg.WriteJSONMessage(w, "Request must contain application/json data", http.StatusUnsupportedMediaType)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// acceptsJSON reports whether the Accept header admits application/json.
// An absent header means the client takes anything.
func acceptsJSON(acceptHeader string) bool {
	if acceptHeader == "" {
		return true
	}

	for _, part := range strings.Split(acceptHeader, ",") {
		switch mediaType(part) {
		case "application/json", "application/*", "*/*":
			return true
		}
	}
	return false
}

func requestHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// mediaType strips parameters (e.g. "; charset=utf-8", "; q=0.9") from a
// media range and normalizes it for comparison.
func mediaType(headerValue string) string {
	mt, _, _ := strings.Cut(headerValue, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
