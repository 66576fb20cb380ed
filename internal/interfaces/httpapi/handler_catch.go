package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type createCatchRequest struct {
	SpeciesID  string   `json:"species_id" validate:"required"`
	TackleID   string   `json:"tackle_id"`
	LocationID string   `json:"location_id"`
	State      string   `json:"state" validate:"omitempty,len=2"`
	Weight     *float64 `json:"weight" validate:"omitempty,gt=0"`
	Length     *float64 `json:"length" validate:"omitempty,gt=0"`
	Latitude   *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Notes      string   `json:"notes" validate:"max=2000"`
	PhotoURL   string   `json:"photo_url" validate:"omitempty,url"`
	CaughtAt   string   `json:"caught_at" validate:"required"`
}

type updateCatchRequest struct {
	Weight   *float64 `json:"weight" validate:"omitempty,gt=0"`
	Length   *float64 `json:"length" validate:"omitempty,gt=0"`
	Notes    *string  `json:"notes" validate:"omitempty,max=2000"`
	PhotoURL *string  `json:"photo_url" validate:"omitempty,url"`
	CaughtAt *string  `json:"caught_at"`
}

func (h *Handler) CreateCatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createCatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	caughtAt, err := time.Parse(time.RFC3339, req.CaughtAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: caught_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	logged, err := h.catchService.Create(ctx, usecase.CreateCatchInput{
		UserID:     principal.UserID,
		SpeciesID:  req.SpeciesID,
		TackleID:   req.TackleID,
		LocationID: req.LocationID,
		State:      req.State,
		Weight:     req.Weight,
		Length:     req.Length,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
		PhotoURL:   req.PhotoURL,
		CaughtAt:   caughtAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create catch failed", "user_id", principal.UserID, "species_id", req.SpeciesID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, catchToDTO(ctx, logged))
}

func (h *Handler) UpdateCatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	catchID := strings.TrimSpace(r.PathValue("catchID"))

	var req updateCatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateCatchInput{
		Weight:   req.Weight,
		Length:   req.Length,
		Notes:    req.Notes,
		PhotoURL: req.PhotoURL,
	}
	if req.CaughtAt != nil {
		caughtAt, err := time.Parse(time.RFC3339, *req.CaughtAt)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: caught_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.CaughtAt = &caughtAt
	}

	updated, err := h.catchService.Update(ctx, catchID, principal.UserID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update catch failed", "user_id", principal.UserID, "catch_id", catchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catchToDTO(ctx, updated))
}

func (h *Handler) DeleteCatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	catchID := strings.TrimSpace(r.PathValue("catchID"))

	if err := h.catchService.Delete(ctx, catchID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete catch failed", "user_id", principal.UserID, "catch_id", catchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) GetCatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCatch")
	defer span.End()

	catchID := strings.TrimSpace(r.PathValue("catchID"))

	logged, err := h.catchService.Get(ctx, catchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get catch failed", "catch_id", catchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catchToDTO(ctx, logged))
}

func (h *Handler) ListCatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCatches")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	filter, err := catchFilterFromQuery(r, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	catches, err := h.catchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list catches failed", "user_id", filter.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]catchDTO, 0, len(catches))
	for _, c := range catches {
		items = append(items, catchToDTO(ctx, c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

// ListFriendCatches returns the combined recent catches of the caller's
// accepted friends, newest first.
func (h *Handler) ListFriendCatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFriendCatches")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	filter, err := catchFilterFromQuery(r, "")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter.UserID = ""

	friendIDs, err := h.friendshipService.FriendIDs(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list friends failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(friendIDs) == 0 {
		writeSuccess(ctx, w, http.StatusOK, []catchDTO{})
		return
	}
	filter.UserIDs = friendIDs

	catches, err := h.catchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list friend catches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]catchDTO, 0, len(catches))
	for _, c := range catches {
		items = append(items, catchToDTO(ctx, c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

// catchFilterFromQuery defaults to the caller's own log; passing user_id
// lets anglers browse a friend's public feed.
func catchFilterFromQuery(r *http.Request, callerID string) (catch.Filter, error) {
	query := r.URL.Query()

	filter := catch.Filter{
		UserID:    strings.TrimSpace(query.Get("user_id")),
		SpeciesID: strings.TrimSpace(query.Get("species_id")),
		State:     strings.TrimSpace(query.Get("state")),
	}
	if filter.UserID == "" {
		filter.UserID = callerID
	}

	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return catch.Filter{}, fmt.Errorf("%w: from must be RFC3339: %v", usecase.ErrInvalidInput, err)
		}
		filter.From = from
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return catch.Filter{}, fmt.Errorf("%w: to must be RFC3339: %v", usecase.ErrInvalidInput, err)
		}
		filter.To = to
	}

	var err error
	if filter.Limit, err = positiveIntQuery(query.Get("limit")); err != nil {
		return catch.Filter{}, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	if filter.Offset, err = positiveIntQuery(query.Get("offset")); err != nil {
		return catch.Filter{}, fmt.Errorf("%w: offset must be a positive integer", usecase.ErrInvalidInput)
	}

	return filter, nil
}

func positiveIntQuery(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return value, nil
}
