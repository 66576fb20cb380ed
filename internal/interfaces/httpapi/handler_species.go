package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/astorrey/TackleHogs/internal/usecase"
)

func (h *Handler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSpecies")
	defer span.End()

	catalog, err := h.speciesService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list species failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]speciesDTO, 0, len(catalog))
	for _, sp := range catalog {
		items = append(items, speciesToDTO(ctx, sp))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SearchSpecies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchSpecies")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(ctx, w, fmt.Errorf("%w: q query parameter is required", usecase.ErrInvalidInput))
		return
	}

	matches, err := h.speciesService.Search(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "search species failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]speciesDTO, 0, len(matches))
	for _, sp := range matches {
		items = append(items, speciesToDTO(ctx, sp))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSpecies")
	defer span.End()

	speciesID := strings.TrimSpace(r.PathValue("speciesID"))

	sp, err := h.speciesService.Get(ctx, speciesID)
	if err != nil {
		h.logger.WarnContext(ctx, "get species failed", "species_id", speciesID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, speciesToDTO(ctx, sp))
}
