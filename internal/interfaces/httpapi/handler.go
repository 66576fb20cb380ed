package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/astorrey/TackleHogs/internal/domain/jobscheduler"
	"github.com/astorrey/TackleHogs/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	catchService       *usecase.CatchService
	competitionService *usecase.CompetitionService
	standingService    *usecase.StandingService
	leaderboardService *usecase.LeaderboardService
	speciesService     *usecase.SpeciesService
	tackleService      *usecase.TackleService
	friendshipService  *usecase.FriendshipService
	jobDispatchRepo    jobscheduler.Repository
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	catchService *usecase.CatchService,
	competitionService *usecase.CompetitionService,
	standingService *usecase.StandingService,
	leaderboardService *usecase.LeaderboardService,
	speciesService *usecase.SpeciesService,
	tackleService *usecase.TackleService,
	friendshipService *usecase.FriendshipService,
	jobDispatchRepo jobscheduler.Repository,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		catchService:       catchService,
		competitionService: competitionService,
		standingService:    standingService,
		leaderboardService: leaderboardService,
		speciesService:     speciesService,
		tackleService:      tackleService,
		friendshipService:  friendshipService,
		jobDispatchRepo:    jobDispatchRepo,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
