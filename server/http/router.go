package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"certmatch-service/internal/config"
	"certmatch-service/internal/middleware"
	resHnd "certmatch-service/internal/resolve/handler"
	"certmatch-service/internal/store"
	"certmatch-service/server/http/handlers"
)

func NewRouter(cfg config.Config, st *store.Store, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	r.Post("/batches", resHnd.CreateBatch(st, logger))
	r.Route("/batches/{id}", func(r chi.Router) {
		r.Post("/recipients", resHnd.SetRecipients(st, logger))
		r.Post("/documents", resHnd.UploadDocuments(st, cfg.MaxUploadMB, logger))
		r.Post("/resolve", resHnd.Resolve(st, logger))
		r.Get("/assignments", resHnd.Assignments(st))
		r.Put("/assignments/{index}/override", resHnd.SetOverride(st, logger))
		r.Delete("/assignments/{index}/override", resHnd.ClearOverride(st, logger))
		r.Get("/assignments/{index}/document", resHnd.AssignedDocument(st))
		r.Get("/report", resHnd.Report(st, logger))
	})

	return r
}
