package middlewares

import (
	"net/http"
	"time"

	"github.com/5w1tchy/wordlist-api/internal/metrics"
)

// Instrument records request count and latency under a fixed route label.
func Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newRTWriter(w, false)
		next.ServeHTTP(rw, r)
		metrics.ObserveHTTP(route, rw.status, time.Since(rw.start))
	})
}
