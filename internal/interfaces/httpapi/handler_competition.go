package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type createCompetitionRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Description     string `json:"description" validate:"max=2000"`
	Type            string `json:"type" validate:"required,oneof=daily weekly monthly yearly"`
	Metric          string `json:"metric" validate:"required,oneof=points catches weight length"`
	TargetSpeciesID string `json:"target_species_id"`
	Visibility      string `json:"visibility" validate:"required,oneof=public private"`
	MaxParticipants int    `json:"max_participants" validate:"gte=0"`
	StartAt         string `json:"start_at" validate:"required"`
	EndAt           string `json:"end_at" validate:"required"`
}

type inviteRequest struct {
	InviteeID string `json:"invitee_id" validate:"required"`
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createCompetitionRequest
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

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: start_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: end_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	comp, err := h.competitionService.Create(ctx, usecase.CreateCompetitionInput{
		CreatorID:       principal.UserID,
		Name:            req.Name,
		Description:     req.Description,
		Type:            competition.Type(req.Type),
		Metric:          competition.Metric(req.Metric),
		TargetSpeciesID: req.TargetSpeciesID,
		Visibility:      competition.Visibility(req.Visibility),
		MaxParticipants: req.MaxParticipants,
		StartAt:         startAt,
		EndAt:           endAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create competition failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, competitionToDTO(ctx, comp))
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))

	comp, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(ctx, comp))
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	query := r.URL.Query()
	filter := competition.Filter{
		Status: competition.Status(strings.TrimSpace(query.Get("status"))),
	}
	if query.Get("mine") == "true" {
		filter.ParticipantID = principal.UserID
	} else {
		filter.PublicOnly = true
	}

	var err error
	if filter.Limit, err = positiveIntQuery(query.Get("limit")); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
		return
	}
	if filter.Offset, err = positiveIntQuery(query.Get("offset")); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: offset must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	competitions, err := h.competitionService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, comp := range competitions {
		items = append(items, competitionToDTO(ctx, comp))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) JoinCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	competitionID := strings.TrimSpace(r.PathValue("competitionID"))

	participant, err := h.competitionService.Join(ctx, competitionID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "join competition failed", "user_id", principal.UserID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, participantToDTO(ctx, participant))
}

func (h *Handler) LeaveCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	competitionID := strings.TrimSpace(r.PathValue("competitionID"))

	if err := h.competitionService.Leave(ctx, competitionID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "leave competition failed", "user_id", principal.UserID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"left": true})
}

func (h *Handler) CancelCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	competitionID := strings.TrimSpace(r.PathValue("competitionID"))

	if err := h.competitionService.Cancel(ctx, competitionID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "cancel competition failed", "user_id", principal.UserID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cancelled": true})
}

func (h *Handler) ListCompetitionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionStandings")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))

	standings, err := h.standingService.Standings(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list competition standings failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]participantDTO, 0, len(standings))
	for _, participant := range standings {
		items = append(items, participantToDTO(ctx, participant))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) InviteToCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InviteToCompetition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	competitionID := strings.TrimSpace(r.PathValue("competitionID"))

	var req inviteRequest
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

	invitation, err := h.competitionService.Invite(ctx, competitionID, principal.UserID, req.InviteeID)
	if err != nil {
		h.logger.WarnContext(ctx, "invite to competition failed", "user_id", principal.UserID, "competition_id", competitionID, "invitee_id", req.InviteeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, invitationToDTO(ctx, invitation))
}

func (h *Handler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondToInvitation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	invitationID := strings.TrimSpace(r.PathValue("invitationID"))

	var req respondInvitationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	invitation, err := h.competitionService.Respond(ctx, invitationID, principal.UserID, req.Accept)
	if err != nil {
		h.logger.WarnContext(ctx, "respond to invitation failed", "user_id", principal.UserID, "invitation_id", invitationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, invitationToDTO(ctx, invitation))
}

func (h *Handler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvitations")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	status := competition.InvitationStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	invitations, err := h.competitionService.ListInvitations(ctx, principal.UserID, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list invitations failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]invitationDTO, 0, len(invitations))
	for _, invitation := range invitations {
		items = append(items, invitationToDTO(ctx, invitation))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
