// Package ledger defines the settlement state machine for debt records and
// the error kinds of the expense pool engine.
//
// The transition rules live in a single table here rather than scattered
// through callers, so no caller can bypass the legality or authorization
// checks. The table is the source of truth for both the service layer and
// the tests.
package ledger

import (
	"fmt"

	"github.com/poolup/backend/internal/models"
)

// Action is something an actor can do to a debt record.
type Action string

const (
	// ActionMarkPaid is the borrower asserting payment was made.
	ActionMarkPaid Action = "mark_paid"

	// ActionCancel is the creator withdrawing the request.
	ActionCancel Action = "cancel"

	// ActionConfirm is the creator attesting payment was received.
	ActionConfirm Action = "confirm"

	// ActionReject is the creator disputing the borrower's payment claim;
	// the record reverts to pending so the borrower can retry.
	ActionReject Action = "reject"
)

// ParseAction validates an action string from the wire.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionMarkPaid, ActionCancel, ActionConfirm, ActionReject:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrValidation, s)
	}
}

// Role identifies which party on a debt record must perform an action.
type Role int

const (
	// RoleCreator is the payee side of the record.
	RoleCreator Role = iota
	// RoleBorrower is the payer side.
	RoleBorrower
)

func (r Role) String() string {
	if r == RoleBorrower {
		return "borrower"
	}
	return "creator"
}

type transition struct {
	actor Role
	next  models.Status
}

// transitions is the full settlement table. Terminal statuses have no rows:
// any action on settled or cancelled fails ErrInvalidTransition.
var transitions = map[models.Status]map[Action]transition{
	models.StatusPending: {
		ActionMarkPaid: {actor: RoleBorrower, next: models.StatusVerificationPending},
		ActionCancel:   {actor: RoleCreator, next: models.StatusCancelled},
	},
	models.StatusVerificationPending: {
		ActionConfirm: {actor: RoleCreator, next: models.StatusSettled},
		ActionReject:  {actor: RoleCreator, next: models.StatusPending},
	},
}

// Next resolves the required actor role and resulting status for applying
// action to a record in the given status. Returns ErrInvalidTransition when
// (status, action) is not a row in the table.
func Next(current models.Status, action Action) (Role, models.Status, error) {
	t, ok := transitions[current][action]
	if !ok {
		return 0, "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, current)
	}
	return t.actor, t.next, nil
}
