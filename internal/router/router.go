package router

import (
	"net/http"

	_ "pets-service/docs"
	mem "pets-service/internal/adapters/storage/memory"
	"pets-service/internal/domain/pets"
	"pets-service/internal/middleware"
	"pets-service/internal/platform/logger"
	"pets-service/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Si es nil se usa un repo in-memory (modo dev / tests).
	Repo pets.Repository

	Logger logger.Logger

	// Si viene, se registra el middleware de métricas y GET /metrics.
	Metrics *metrics.Manager

	// SkipIDAssignment reproduce el create histórico (sin id).
	SkipIDAssignment bool

	Swagger bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewPetRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	svcOpts := []pets.Option{
		pets.WithLogger(log),
		pets.WithIDAssignment(!opts.SkipIDAssignment),
	}
	if opts.Metrics != nil {
		svcOpts = append(svcOpts, pets.WithRecorder(opts.Metrics))
	}
	petsSvc := pets.NewService(repo, svcOpts...)

	pets.RegisterRoutes(r, petsSvc, log)

	return r
}
