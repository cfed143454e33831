package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger tags every request with an ID and logs method, path and
// duration once the handler returns. The ID is echoed in X-Request-ID so
// client reports can be matched to server logs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s (%s)", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}
