package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pmfkit/internal/pmf"
)

// SourcesHandler serves the shared source-category reference data.
type SourcesHandler struct{}

// RegisterRoutes registers the source reference routes.
func (h *SourcesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sources", func(r chi.Router) {
		r.Get("/colors", h.GetColors)
		r.Get("/category/{factor}", h.GetCategory)
	})
}

// GetColors handles GET /api/sources/colors
func (h *SourcesHandler) GetColors(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, pmf.SourceColors())
}

// GetCategory handles GET /api/sources/category/{factor}
func (h *SourcesHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	factor := chi.URLParam(r, "factor")
	render.JSON(w, r, map[string]string{
		"factor":   factor,
		"category": pmf.SourceCategory(factor),
		"color":    pmf.SourceColor(pmf.SourceCategory(factor)),
	})
}
