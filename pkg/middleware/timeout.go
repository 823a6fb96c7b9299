package middleware

import (
	"net/http"
	"time"
)

// timeoutBody matches the shape of the API's other error responses.
const timeoutBody = `{"error":"request timed out"}`

// Timeout bounds the whole question pipeline. The request context is cancelled
// when the limit is hit, which also aborts the model call and the query. The
// 503 reply carries a JSON content type; handlers that finish in time set
// their own.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		th := http.TimeoutHandler(h, timeout, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
