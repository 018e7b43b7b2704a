package service

import "matchday/app_error"

var (
	ErrNotAuthenticated = app_error.New(app_error.NotAuthenticated, "NOT_AUTHENTICATED", "not authenticated")
	ErrNotAuthorized    = app_error.New(app_error.NotAuthorized, "NOT_AUTHORIZED", "not authorized for this match")

	ErrInvalidMatchId   = app_error.New(app_error.InvalidInput, "INVALID_MATCH_ID", "match id must be a positive integer")
	ErrInvalidBody      = app_error.New(app_error.InvalidInput, "INVALID_BODY", "invalid request body")
	ErrInvalidVenue     = app_error.New(app_error.InvalidInput, "INVALID_VENUE", "venue must be Hjemme or Ude")
	ErrMissingLeader    = app_error.New(app_error.InvalidInput, "MISSING_LEADER", "leader name is required")
	ErrInvalidSignature = app_error.New(app_error.InvalidInput, "INVALID_SIGNATURE", "signature must be a base64 encoded PNG data url")
	ErrInvalidRefIndex  = app_error.New(app_error.InvalidInput, "INVALID_REF_INDEX", "referee index must be 1 or 2")
	ErrMissingName      = app_error.New(app_error.InvalidInput, "MISSING_NAME", "referee name is required")
	ErrMissingRefNo     = app_error.New(app_error.InvalidInput, "MISSING_REFNO", "referee number is required")
	ErrConfirmMismatch  = app_error.New(app_error.InvalidInput, "CONFIRM_MISMATCH", "confirmation text does not match the match id")
	ErrInvalidDecision  = app_error.New(app_error.InvalidInput, "INVALID_DECISION", "decision must be APPROVE or REJECT")
	ErrInvalidDate      = app_error.New(app_error.InvalidInput, "INVALID_DATE", "date must be formatted YYYY-MM-DD")
	ErrInvalidTime      = app_error.New(app_error.InvalidInput, "INVALID_TIME", "time must be formatted HH:MM")
	ErrMissingProposal  = app_error.New(app_error.InvalidInput, "MISSING_PROPOSAL", "a proposed date or time is required")

	ErrMatchLocked        = app_error.New(app_error.PreconditionFailed, "MATCH_LOCKED", "match is closed")
	ErrNoLineup           = app_error.New(app_error.PreconditionFailed, "NO_LINEUP", "no lineup has been published for this venue")
	ErrLeaderNotInLineup  = app_error.New(app_error.PreconditionFailed, "LEADER_NOT_IN_LINEUP", "leader is not marked as leader in the lineup")
	ErrMatchNotStarted    = app_error.New(app_error.PreconditionFailed, "MATCH_NOT_STARTED", "match has not been started")
	ErrMissingApprovals   = app_error.New(app_error.PreconditionFailed, "MISSING_APPROVALS", "both lineups must be approved before the match can start")
	ErrAlreadyClosed      = app_error.New(app_error.PreconditionFailed, "ALREADY_CLOSED", "match is already closed")
	ErrMissingRef1        = app_error.New(app_error.PreconditionFailed, "MISSING_REF1", "referee 1 has not approved")
	ErrMissingRef2        = app_error.New(app_error.PreconditionFailed, "MISSING_REF2", "referee 2 has not approved")
	ErrNoActiveRequest    = app_error.New(app_error.PreconditionFailed, "NO_ACTIVE_REQUEST", "no move request is awaiting the away team")
	ErrRequestNotPending  = app_error.New(app_error.PreconditionFailed, "REQUEST_NOT_PENDING", "move request is not awaiting a decision")
	ErrActiveRequestExist = app_error.New(app_error.PreconditionFailed, "ACTIVE_REQUEST_EXISTS", "match already has an active move request")

	ErrMatchNotFound     = app_error.New(app_error.NotFound, "MATCH_NOT_FOUND", "match not found")
	ErrRequestNotFound   = app_error.New(app_error.NotFound, "REQUEST_NOT_FOUND", "move request not found")
	ErrSignatureNotFound = app_error.New(app_error.NotFound, "SIGNATURE_NOT_FOUND", "no signature stored for this venue")
)
