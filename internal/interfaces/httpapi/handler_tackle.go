package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/astorrey/TackleHogs/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type createTackleRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand" validate:"max=120"`
	Model       string   `json:"model" validate:"max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	SourceURL   string   `json:"source_url" validate:"omitempty,url"`
}

func (h *Handler) CreateTackleItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTackleItem")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createTackleRequest
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

	item, err := h.tackleService.Create(ctx, usecase.CreateTackleInput{
		UserID:      principal.UserID,
		Name:        req.Name,
		Brand:       req.Brand,
		Model:       req.Model,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		SourceURL:   req.SourceURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tackle item failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tackleItemToDTO(ctx, item))
}

func (h *Handler) ListMyTackle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTackle")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	items, err := h.tackleService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tackle failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]tackleItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, tackleItemToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) GetTackleItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTackleItem")
	defer span.End()

	itemID := strings.TrimSpace(r.PathValue("itemID"))

	item, err := h.tackleService.Get(ctx, itemID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tackle item failed", "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tackleItemToDTO(ctx, item))
}

func (h *Handler) DeleteTackleItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTackleItem")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	itemID := strings.TrimSpace(r.PathValue("itemID"))

	if err := h.tackleService.Delete(ctx, itemID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete tackle item failed", "user_id", principal.UserID, "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
