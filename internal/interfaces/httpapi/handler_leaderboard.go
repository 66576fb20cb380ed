package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
	"github.com/astorrey/TackleHogs/internal/usecase"
)

func (h *Handler) GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGlobalLeaderboard")
	defer span.End()

	state, metric, err := leaderboardParamsFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := positiveIntQuery(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.leaderboardService.Global(ctx, state, metric, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get global leaderboard failed", "state", state, "metric", metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, rankedEntryToDTO(ctx, entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFriendsLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFriendsLeaderboard")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	state, metric, err := leaderboardParamsFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.Friends(ctx, principal.UserID, state, metric)
	if err != nil {
		h.logger.WarnContext(ctx, "get friends leaderboard failed", "user_id", principal.UserID, "state", state, "metric", metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, rankedEntryToDTO(ctx, entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyLeaderboardRank(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyLeaderboardRank")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	state, metric, err := leaderboardParamsFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.leaderboardService.UserRank(ctx, principal.UserID, state, metric)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard rank failed", "user_id", principal.UserID, "state", state, "metric", metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankedEntryToDTO(ctx, entry))
}

func leaderboardParamsFromQuery(r *http.Request) (string, competition.Metric, error) {
	query := r.URL.Query()

	state := strings.TrimSpace(query.Get("state"))
	if state == "" {
		state = leaderboard.StateAll
	}

	metric := competition.MetricPoints
	if raw := strings.TrimSpace(query.Get("metric")); raw != "" {
		metric = competition.Metric(raw)
		if _, ok := competition.AllMetrics[metric]; !ok {
			return "", "", fmt.Errorf("%w: unknown metric %q", usecase.ErrInvalidInput, raw)
		}
	}

	return state, metric, nil
}
