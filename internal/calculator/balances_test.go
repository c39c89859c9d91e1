package calculator

import (
	"testing"

	"github.com/poolup/backend/internal/models"
)

func record(creator, borrower string, amount models.Cents, status models.Status) *models.DebtRecord {
	return &models.DebtRecord{
		CreatorID:  creator,
		BorrowerID: borrower,
		AmountOwed: amount,
		Status:     status,
	}
}

func TestNetBalance(t *testing.T) {
	records := []*models.DebtRecord{
		record("alice", "bob", 3000, models.StatusPending),              // bob owes alice 30.00
		record("alice", "bob", 2000, models.StatusVerificationPending), // bob owes alice 20.00
		record("bob", "alice", 1500, models.StatusPending),             // alice owes bob 15.00
		record("alice", "bob", 9900, models.StatusSettled),             // history, excluded
		record("bob", "alice", 4200, models.StatusCancelled),           // history, excluded
		record("alice", "carol", 700, models.StatusPending),            // different pair, skipped
	}

	t.Run("sums only active records between the pair", func(t *testing.T) {
		if got := NetBalance("alice", "bob", records); got != 3500 {
			t.Errorf("NetBalance(alice, bob) = %s, want 35.00", got)
		}
	})

	t.Run("is antisymmetric", func(t *testing.T) {
		ab := NetBalance("alice", "bob", records)
		ba := NetBalance("bob", "alice", records)
		if ab != -ba {
			t.Errorf("NetBalance(alice, bob) = %s but NetBalance(bob, alice) = %s", ab, ba)
		}
	})

	t.Run("settled pair reports zero", func(t *testing.T) {
		history := []*models.DebtRecord{
			record("alice", "bob", 5000, models.StatusSettled),
			record("bob", "alice", 2500, models.StatusCancelled),
		}
		if got := NetBalance("alice", "bob", history); got != 0 {
			t.Errorf("NetBalance over history = %s, want 0.00", got)
		}
	})
}

func TestDashboardTotals(t *testing.T) {
	records := []*models.DebtRecord{
		record("alice", "bob", 3000, models.StatusPending),
		record("alice", "carol", 2000, models.StatusVerificationPending),
		record("dave", "alice", 1250, models.StatusPending),
		record("alice", "bob", 9900, models.StatusSettled),
		record("erin", "alice", 4000, models.StatusCancelled),
		record("dave", "erin", 800, models.StatusPending), // does not touch alice
	}

	totals := DashboardTotals("alice", records)
	if totals.TotalOwed != 5000 {
		t.Errorf("TotalOwed = %s, want 50.00", totals.TotalOwed)
	}
	if totals.TotalDue != 1250 {
		t.Errorf("TotalDue = %s, want 12.50", totals.TotalDue)
	}
}
