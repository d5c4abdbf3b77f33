package middleware

import (
	"net/http"
	"strconv"
	"time"

	"hotelinfinity/pkg/metrics"
)

// RouteLabeler maps a request to a bounded route label such as
// "/api/v1/rooms/:id".
type RouteLabeler func(r *http.Request) string

func Metrics(m *metrics.Metrics, route RouteLabeler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			label := "unmatched"
			if route != nil {
				if l := route(r); l != "" {
					label = l
				}
			}
			m.HTTPRequests.WithLabelValues(r.Method, label, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
		})
	}
}
