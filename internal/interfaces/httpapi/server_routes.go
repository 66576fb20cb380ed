package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/species", handler.ListSpecies)
	mux.HandleFunc("GET /v1/species/search", handler.SearchSpecies)
	mux.HandleFunc("GET /v1/species/{speciesID}", handler.GetSpecies)
	mux.HandleFunc("GET /v1/leaderboard/global", handler.GetGlobalLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedCatchRoutes(mux, handler, verifier)
	registerAuthorizedCompetitionRoutes(mux, handler, verifier)
	registerAuthorizedLeaderboardRoutes(mux, handler, verifier)
	registerAuthorizedTackleRoutes(mux, handler, verifier)
	registerAuthorizedFriendRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/advance-due", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAdvanceDueJob)))
	mux.Handle("POST /v1/internal/jobs/rebuild-leaderboard", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLeaderboardRebuildJob)))
}

func registerAuthorizedCatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/catches", RequireAuth(verifier, http.HandlerFunc(handler.CreateCatch)))
	mux.Handle("GET /v1/catches", RequireAuth(verifier, http.HandlerFunc(handler.ListCatches)))
	mux.Handle("GET /v1/catches/friends", RequireAuth(verifier, http.HandlerFunc(handler.ListFriendCatches)))
	mux.Handle("GET /v1/catches/{catchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetCatch)))
	mux.Handle("PATCH /v1/catches/{catchID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateCatch)))
	mux.Handle("DELETE /v1/catches/{catchID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteCatch)))
}

func registerAuthorizedCompetitionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/competitions", RequireAuth(verifier, http.HandlerFunc(handler.CreateCompetition)))
	mux.Handle("GET /v1/competitions", RequireAuth(verifier, http.HandlerFunc(handler.ListCompetitions)))
	mux.Handle("GET /v1/competitions/{competitionID}", RequireAuth(verifier, http.HandlerFunc(handler.GetCompetition)))
	mux.Handle("GET /v1/competitions/{competitionID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.ListCompetitionStandings)))
	mux.Handle("POST /v1/competitions/{competitionID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinCompetition)))
	mux.Handle("POST /v1/competitions/{competitionID}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveCompetition)))
	mux.Handle("POST /v1/competitions/{competitionID}/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelCompetition)))
	mux.Handle("POST /v1/competitions/{competitionID}/invitations", RequireAuth(verifier, http.HandlerFunc(handler.InviteToCompetition)))
	mux.Handle("GET /v1/invitations", RequireAuth(verifier, http.HandlerFunc(handler.ListMyInvitations)))
	mux.Handle("POST /v1/invitations/{invitationID}/respond", RequireAuth(verifier, http.HandlerFunc(handler.RespondToInvitation)))
}

func registerAuthorizedLeaderboardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leaderboard/friends", RequireAuth(verifier, http.HandlerFunc(handler.GetFriendsLeaderboard)))
	mux.Handle("GET /v1/leaderboard/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyLeaderboardRank)))
}

func registerAuthorizedTackleRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tackle", RequireAuth(verifier, http.HandlerFunc(handler.CreateTackleItem)))
	mux.Handle("GET /v1/tackle", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTackle)))
	mux.Handle("GET /v1/tackle/{itemID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTackleItem)))
	mux.Handle("DELETE /v1/tackle/{itemID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTackleItem)))
}

func registerAuthorizedFriendRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/friends/requests", RequireAuth(verifier, http.HandlerFunc(handler.RequestFriend)))
	mux.Handle("POST /v1/friends/requests/{requesterID}/respond", RequireAuth(verifier, http.HandlerFunc(handler.RespondToFriendRequest)))
	mux.Handle("GET /v1/friends", RequireAuth(verifier, http.HandlerFunc(handler.ListMyFriends)))
}
