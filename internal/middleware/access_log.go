package middleware

import (
	"net/http"
	"time"

	"pets-service/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog escribe una entrada por request con status, bytes y duración.
// Debe ir después de chimw.RequestID para tener req_id.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := map[string]any{
				"req_id": chimw.GetReqID(r.Context()),
				"method": r.Method,
				"path":   r.URL.RequestURI(),
				"status": status,
				"bytes":  ww.BytesWritten(),
				"dur_ms": time.Since(start).Milliseconds(),
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("request", fields)
			case status >= http.StatusBadRequest:
				log.Warn("request", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
