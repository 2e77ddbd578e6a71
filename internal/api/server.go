package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// Server holds the HTTP handlers for the panel API.
type Server struct {
	router   chi.Router
	svc      *campaign.Service
	catalog  *segment.Catalog
	healthFn func() error
}

// NewServer creates the API server. healthFn is called by the health
// endpoint; pass the database ping. It may be nil.
func NewServer(svc *campaign.Service, catalog *segment.Catalog, healthFn func() error) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		svc:      svc,
		catalog:  catalog,
		healthFn: healthFn,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.routes()
	return s
}

// Router exposes the chi router so the entry point can wrap it with
// process-level middleware (CORS, logging).
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/health", s.health)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/tables/{table}", func(r chi.Router) {
			r.Get("/columns", s.listFilterableColumns)
			r.Post("/audience/count", s.countAudience)
			r.Post("/baits/preview", s.previewBaits)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/oneshot", s.executeOneShot)

			r.Route("/recurring", func(r chi.Router) {
				r.Get("/", s.listRecurring)
				r.Post("/", s.createRecurring)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.getRecurring)
					r.Put("/", s.updateRecurring)
					r.Delete("/", s.deleteRecurring)
					r.Post("/toggle", s.toggleRecurring)
					r.Post("/execute", s.executeRecurring)
				})
			})
		})

		r.Route("/baits", func(r chi.Router) {
			r.Get("/", s.listBaits)
			r.Post("/", s.createBait)
			r.Post("/{id}/toggle", s.toggleBait)
			r.Delete("/{id}", s.deleteBait)
		})

		r.Route("/idmappings", func(r chi.Router) {
			r.Get("/", s.listMappings)
			r.Post("/", s.saveMapping)
			r.Delete("/{id}", s.deleteMapping)
		})
	})
}
