package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	pmferrors "pmfkit/internal/errors"
	"pmfkit/pkg/contracts/domain"
)

// RunHandler handles the run table HTTP requests.
type RunHandler struct {
	service RunReader
	logger  *slog.Logger
}

// NewRunHandler creates a new run handler.
func NewRunHandler(service RunReader, logger *slog.Logger) *RunHandler {
	return &RunHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "run")),
	}
}

// RegisterRoutes registers the run routes.
func (h *RunHandler) RegisterRoutes(r chi.Router) {
	r.Get("/runs", h.ListSites)
	r.Route("/runs/{site}", func(r chi.Router) {
		r.Get("/metadata", h.GetMetadata)
		r.Get("/profiles", h.GetProfiles)
		r.Get("/contributions", h.GetContributions)
		r.Get("/bootstrap", h.GetBootstrap)
		r.Get("/uncertainty", h.GetUncertainty)
		r.Get("/seasonal", h.GetSeasonal)
	})
}

// solutionParam resolves the solution query parameter, defaulting to the
// base run. ok is false after a 400 response has been written.
func (h *RunHandler) solutionParam(w http.ResponseWriter, r *http.Request) (domain.Solution, bool) {
	raw := r.URL.Query().Get("solution")
	if raw == "" {
		return domain.SolutionBase, true
	}
	solution := domain.Solution(raw)
	if !solution.Valid() {
		h.logger.WarnContext(r.Context(), "invalid solution requested", slog.String("solution", raw))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{
			"error": "invalid solution, use base or constrained",
		})
		return "", false
	}
	return solution, true
}

func (h *RunHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *pmferrors.Error
	if errors.As(err, &perr) {
		render.Status(r, perr.StatusCode())
		render.JSON(w, r, perr)
		return
	}
	h.logger.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]string{"error": "internal error"})
}

// ListSites handles GET /api/runs
func (h *RunHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.service.Sites(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"sites": sites})
}

// GetMetadata handles GET /api/runs/{site}/metadata
func (h *RunHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Metadata(r.Context(), chi.URLParam(r, "site"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, meta)
}

// GetProfiles handles GET /api/runs/{site}/profiles
func (h *RunHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	solution, ok := h.solutionParam(w, r)
	if !ok {
		return
	}
	table, err := h.service.Profiles(r.Context(), chi.URLParam(r, "site"), solution)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// GetContributions handles GET /api/runs/{site}/contributions
func (h *RunHandler) GetContributions(w http.ResponseWriter, r *http.Request) {
	solution, ok := h.solutionParam(w, r)
	if !ok {
		return
	}
	table, err := h.service.Contributions(r.Context(), chi.URLParam(r, "site"), solution)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// GetBootstrap handles GET /api/runs/{site}/bootstrap
func (h *RunHandler) GetBootstrap(w http.ResponseWriter, r *http.Request) {
	solution, ok := h.solutionParam(w, r)
	if !ok {
		return
	}
	result, err := h.service.Bootstrap(r.Context(), chi.URLParam(r, "site"), solution)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetUncertainty handles GET /api/runs/{site}/uncertainty
func (h *RunHandler) GetUncertainty(w http.ResponseWriter, r *http.Request) {
	solution, ok := h.solutionParam(w, r)
	if !ok {
		return
	}
	result, err := h.service.Uncertainty(r.Context(), chi.URLParam(r, "site"), solution)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetSeasonal handles GET /api/runs/{site}/seasonal
func (h *RunHandler) GetSeasonal(w http.ResponseWriter, r *http.Request) {
	solution, ok := h.solutionParam(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	table, err := h.service.Seasonal(r.Context(), chi.URLParam(r, "site"), solution,
		query.Get("specie"), query.Get("normalize") == "true")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}
