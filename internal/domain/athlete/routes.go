package athlete

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns athlete router, mounted at /api/v1/athletes
func (h *Handler) Routes(authMiddleware, operatorMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Post("/completion/preview", h.PreviewCompletion)
	r.Get("/{id}/completion", h.GetCompletion)
	r.Get("/{id}/score", h.GetScore)
	r.Post("/{id}/views", h.RecordView)
	r.Get("/{id}/media", h.ListMedia)

	// Owner
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/{id}/publish", h.Publish)
		r.Delete("/{id}/publish", h.Unpublish)
		r.Delete("/{id}/media/{mediaId}", h.DeleteMedia)
	})

	// Operator
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(operatorMiddleware)
		r.Post("/{id}/completion/refresh", h.RefreshCompletion)
		r.Put("/{id}/contacts/review", h.ReviewContacts)
	})

	return r
}
