package ledger

import "errors"

// Engine error kinds. Every failure out of the ledger engine wraps exactly one
// of these sentinels, so callers can errors.Is their way to a response code.
// All of them are terminal to the calling request: the engine never retries
// internally, and no partial mutation is ever observable. A Conflict is safe
// for the caller to retry after re-reading current state.
var (
	// ErrValidation covers bad creation input: non-positive amount, empty
	// participant set, blank title.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the request or debt record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the actor is neither the required creator nor
	// borrower for the requested action.
	ErrUnauthorized = errors.New("actor not authorized for action")

	// ErrInvalidTransition means the action is not legal from the record's
	// current status, including any action on a terminal status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict means another actor transitioned the record between load
	// and update (optimistic-concurrency collision).
	ErrConflict = errors.New("concurrent status change")
)
