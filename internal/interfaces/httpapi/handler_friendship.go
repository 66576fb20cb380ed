package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type friendRequestRequest struct {
	FriendID string `json:"friend_id" validate:"required"`
}

type respondFriendRequestRequest struct {
	Accept bool `json:"accept"`
}

type friendRequestDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	FriendID  string `json:"friend_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) RequestFriend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestFriend")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req friendRequestRequest
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

	created, err := h.friendshipService.Request(ctx, principal.UserID, req.FriendID)
	if err != nil {
		h.logger.WarnContext(ctx, "friend request failed", "user_id", principal.UserID, "friend_id", req.FriendID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, friendRequestDTO{
		ID:        created.ID,
		UserID:    created.UserID,
		FriendID:  created.FriendID,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) RespondToFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondToFriendRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	requesterID := strings.TrimSpace(r.PathValue("requesterID"))

	var req respondFriendRequestRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.friendshipService.Respond(ctx, principal.UserID, requesterID, req.Accept); err != nil {
		h.logger.WarnContext(ctx, "respond to friend request failed", "user_id", principal.UserID, "requester_id", requesterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"accepted": req.Accept})
}

func (h *Handler) ListMyFriends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyFriends")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	friendIDs, err := h.friendshipService.FriendIDs(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list friends failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"friend_ids": friendIDs})
}
