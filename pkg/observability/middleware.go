package observability

import (
	"net/http"
	"strconv"
	"time"
)

// RouteFunc names the route a request matched, e.g. its ServeMux pattern.
// Labelling by pattern instead of raw path keeps hub ids out of label values.
type RouteFunc func(*http.Request) string

// HTTPMiddleware records request counts and latencies.
func (m *Metrics) HTTPMiddleware(route RouteFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			name := route(r)
			if name == "" {
				name = "unmatched"
			}

			m.HTTPRequestsTotal.WithLabelValues(r.Method, name, strconv.Itoa(rw.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, name).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
