// Package httpapi exposes the folio services as a JSON REST API.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route and the middleware chain. Writes require a
// bearer access token; reads, comments and likes are public.
func NewRouter(s Services, logger logging.Logger) chi.Router {
	logger = discardLogger(logger)
	h := &handler{Services: s, logger: logger}

	r := chi.NewRouter()
	r.Use(Recoverer(logger))
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(logger))
	r.Use(CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	requireAuth := RequireAuth(s.Auth)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)
	})

	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", h.getPortfolio)
		r.With(requireAuth).Put("/", h.updatePortfolio)
	})

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", h.listBlogs)
		r.With(requireAuth).Post("/", h.createBlog)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getBlog)
			r.With(requireAuth).Put("/", h.updateBlog)
			r.With(requireAuth).Delete("/", h.deleteBlog)

			r.Get("/comments", h.listComments)
			r.Post("/comments", h.createComment)

			r.Get("/likes", h.getLikes)
			r.Post("/likes", h.addLike)
		})
	})

	r.With(requireAuth).Delete("/comments/{id}", h.deleteComment)

	return r
}
