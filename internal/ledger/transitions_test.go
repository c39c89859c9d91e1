package ledger

import (
	"errors"
	"testing"

	"github.com/poolup/backend/internal/models"
)

var allStatuses = []models.Status{
	models.StatusPending,
	models.StatusVerificationPending,
	models.StatusSettled,
	models.StatusCancelled,
}

var allActions = []Action{ActionMarkPaid, ActionCancel, ActionConfirm, ActionReject}

func TestNext(t *testing.T) {
	// The only legal (status, action) pairs, with their required actor and
	// resulting status. Everything else must fail ErrInvalidTransition.
	legal := map[models.Status]map[Action]struct {
		role Role
		next models.Status
	}{
		models.StatusPending: {
			ActionMarkPaid: {RoleBorrower, models.StatusVerificationPending},
			ActionCancel:   {RoleCreator, models.StatusCancelled},
		},
		models.StatusVerificationPending: {
			ActionConfirm: {RoleCreator, models.StatusSettled},
			ActionReject:  {RoleCreator, models.StatusPending},
		},
	}

	for _, status := range allStatuses {
		for _, action := range allActions {
			t.Run(string(status)+"/"+string(action), func(t *testing.T) {
				role, next, err := Next(status, action)
				want, ok := legal[status][action]
				if !ok {
					if !errors.Is(err, ErrInvalidTransition) {
						t.Fatalf("Next(%s, %s) error = %v, want ErrInvalidTransition", status, action, err)
					}
					return
				}
				if err != nil {
					t.Fatalf("Next(%s, %s) failed: %v", status, action, err)
				}
				if role != want.role {
					t.Errorf("role = %s, want %s", role, want.role)
				}
				if next != want.next {
					t.Errorf("next = %s, want %s", next, want.next)
				}
			})
		}
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, status := range []models.Status{models.StatusSettled, models.StatusCancelled} {
		if !status.Terminal() {
			t.Errorf("%s should be terminal", status)
		}
		for _, action := range allActions {
			if _, _, err := Next(status, action); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Next(%s, %s) = %v, want ErrInvalidTransition", status, action, err)
			}
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, action := range allActions {
		got, err := ParseAction(string(action))
		if err != nil || got != action {
			t.Errorf("ParseAction(%q) = %v, %v", action, got, err)
		}
	}

	if _, err := ParseAction("settle"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseAction(settle) error = %v, want ErrValidation", err)
	}
}
