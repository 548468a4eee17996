package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// HTTPRecorder es la parte de platform/metrics que usa el middleware.
type HTTPRecorder interface {
	RecordHTTPRequest(route, method, status string, durationMs float64)
}

// Metrics registra requests por patrón de ruta de chi (no por path crudo,
// para no explotar la cardinalidad con /pets/{id}).
func Metrics(rec HTTPRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			durMs := float64(time.Since(start).Microseconds()) / 1000
			rec.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), durMs)
		})
	}
}
