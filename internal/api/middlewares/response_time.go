package middlewares

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type rtWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
	status      int
	bytes       int64
	header      bool // set X-Response-Time
}

func (w *rtWriter) stamp() {
	if !w.wroteHeader {
		if w.header {
			w.Header().Set("X-Response-Time", time.Since(w.start).String())
		}
		w.wroteHeader = true
	}
}

func (w *rtWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *rtWriter) Write(b []byte) (int, error) {
	w.stamp()
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *rtWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func newRTWriter(w http.ResponseWriter, header bool) *rtWriter {
	return &rtWriter{ResponseWriter: w, start: time.Now(), status: http.StatusOK, header: header}
}

func ResponseTimeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newRTWriter(w, true)
		next.ServeHTTP(rw, r)
		if !rw.wroteHeader {
			rw.Header().Set("X-Response-Time", time.Since(rw.start).String())
		}
	})
}

// AccessLog writes one line per request. Bodies and query strings are not
// logged: both may carry personal details.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newRTWriter(w, false)
			next.ServeHTTP(rw, r)
			log.Info("http request",
				zap.String("request_id", GetRequestID(r)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.status),
				zap.Int64("bytes", rw.bytes),
				zap.Duration("duration", time.Since(rw.start)))
		})
	}
}
