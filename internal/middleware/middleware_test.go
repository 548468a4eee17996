package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"pets-service/internal/middleware"
	"pets-service/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type recorded struct {
	route, method, status string
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recorded
}

func (f *fakeRecorder) RecordHTTPRequest(route, method, status string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recorded{route, method, status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}

	r := chi.NewRouter()
	r.Use(middleware.Metrics(rec))
	r.Put("/pets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/pets", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPut, "/pets/42", nil),
		httptest.NewRequest(http.MethodGet, "/pets", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	want := []recorded{
		{"/pets/{id}", http.MethodPut, "404"},
		{"/pets", http.MethodGet, "200"},
	}
	if len(rec.seen) != len(want) {
		t.Fatalf("expected %d records, got %v", len(want), rec.seen)
	}
	for i := range want {
		if rec.seen[i] != want[i] {
			t.Fatalf("record %d: got %+v want %+v", i, rec.seen[i], want[i])
		}
	}
}

func TestAccessLog_WritesOneEntryPerRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Output: &buf})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Post("/pets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"x"}`))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader("{}")))

	line := strings.TrimSpace(buf.String())
	if strings.Count(line, "\n") != 0 {
		t.Fatalf("expected a single log line, got %q", line)
	}
	for _, want := range []string{"level=warn", "method=POST", "path=/pets", "status=400", "bytes=13", "req_id="} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}
