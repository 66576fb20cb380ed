package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Competition conflict and state errors. Wrapped with detail at the call
	// site and mapped to HTTP 409 at the API boundary.
	ErrAlreadyJoined       = errors.New("already joined")
	ErrCompetitionFull     = errors.New("competition is full")
	ErrJoinWindowClosed    = errors.New("join window closed")
	ErrCannotLeaveActive   = errors.New("cannot leave after competition start")
	ErrDuplicateInvitation = errors.New("duplicate invitation")
	ErrNotAParticipant     = errors.New("not a participant")
	ErrInvitationResolved  = errors.New("invitation already resolved")
	ErrCompetitionClosed   = errors.New("competition is closed")
)
