package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/poolup/backend/internal/ledger"
	"github.com/poolup/backend/internal/models"
	"github.com/poolup/backend/internal/storage/sqlite"
)

func newTestService(t *testing.T) *PoolService {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPoolService(store)
}

func createPool(t *testing.T, svc *PoolService, creator string, total models.Cents, borrowers []string, included bool) []*models.DebtRecord {
	t.Helper()
	_, records, _, err := svc.CreatePool(context.Background(), creator, CreatePoolParams{
		Title:           "Dinner",
		TotalAmount:     total,
		ParticipantIDs:  borrowers,
		CreatorIncluded: included,
		ChatID:          "chat-1",
	})
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	return records
}

func TestCreatePool(t *testing.T) {
	ctx := context.Background()

	t.Run("creator included halves the share", func(t *testing.T) {
		svc := newTestService(t)
		req, records, split, err := svc.CreatePool(ctx, "alice", CreatePoolParams{
			Title:           "Dinner",
			TotalAmount:     10000, // 100.00
			ParticipantIDs:  []string{"bob"},
			CreatorIncluded: true,
			ChatID:          "chat-1",
		})
		if err != nil {
			t.Fatalf("CreatePool failed: %v", err)
		}
		if split.GroupSize != 2 {
			t.Errorf("GroupSize = %d, want 2", split.GroupSize)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 debt record, got %d", len(records))
		}
		if records[0].AmountOwed != 5000 {
			t.Errorf("AmountOwed = %s, want 50.00", records[0].AmountOwed)
		}
		// The creator's implicit share is display-only, never a record.
		if split.CreatorShare != 5000 {
			t.Errorf("CreatorShare = %s, want 50.00", split.CreatorShare)
		}
		if records[0].RequestID != req.ID {
			t.Errorf("RequestID = %s, want %s", records[0].RequestID, req.ID)
		}
	})

	t.Run("creator excluded owes full amount", func(t *testing.T) {
		svc := newTestService(t)
		_, records, split, err := svc.CreatePool(ctx, "alice", CreatePoolParams{
			Title:           "Dinner",
			TotalAmount:     10000,
			ParticipantIDs:  []string{"bob"},
			CreatorIncluded: false,
			ChatID:          "chat-1",
		})
		if err != nil {
			t.Fatalf("CreatePool failed: %v", err)
		}
		if records[0].AmountOwed != 10000 {
			t.Errorf("AmountOwed = %s, want 100.00", records[0].AmountOwed)
		}
		if split.CreatorShare != 0 {
			t.Errorf("CreatorShare = %s, want 0.00", split.CreatorShare)
		}
	})

	t.Run("one record per participant with cloned fields", func(t *testing.T) {
		svc := newTestService(t)
		req, records, _, err := svc.CreatePool(ctx, "alice", CreatePoolParams{
			Title:           "Trip",
			TotalAmount:     9000,
			ParticipantIDs:  []string{"bob", "carol", "dave"},
			CreatorIncluded: true,
			ChatID:          "chat-7",
		})
		if err != nil {
			t.Fatalf("CreatePool failed: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		for i, rec := range records {
			if rec.RequestID != req.ID || rec.CreatorID != "alice" || rec.ChatID != "chat-7" || !rec.CreatorIncluded {
				t.Errorf("record %d: parent fields not cloned: %+v", i, rec)
			}
			if rec.Status != models.StatusPending {
				t.Errorf("record %d: Status = %s, want pending", i, rec.Status)
			}
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := newTestService(t)
		cases := []struct {
			name   string
			params CreatePoolParams
		}{
			{"blank title", CreatePoolParams{Title: "  ", TotalAmount: 100, ParticipantIDs: []string{"bob"}, ChatID: "c"}},
			{"zero amount", CreatePoolParams{Title: "X", TotalAmount: 0, ParticipantIDs: []string{"bob"}, ChatID: "c"}},
			{"no participants", CreatePoolParams{Title: "X", TotalAmount: 100, ParticipantIDs: nil, ChatID: "c"}},
			{"creator among participants", CreatePoolParams{Title: "X", TotalAmount: 100, ParticipantIDs: []string{"alice"}, ChatID: "c"}},
			{"duplicate participant", CreatePoolParams{Title: "X", TotalAmount: 100, ParticipantIDs: []string{"bob", "bob"}, ChatID: "c"}},
			{"missing chat", CreatePoolParams{Title: "X", TotalAmount: 100, ParticipantIDs: []string{"bob"}}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, _, _, err := svc.CreatePool(ctx, "alice", tc.params); !errors.Is(err, ledger.ErrValidation) {
					t.Errorf("CreatePool error = %v, want ErrValidation", err)
				}
			})
		}

		// A failed creation must not leave partial records behind.
		pools, err := svc.ChatPools(ctx, "c")
		if err != nil {
			t.Fatalf("ChatPools failed: %v", err)
		}
		if len(pools) != 0 {
			t.Errorf("expected no records after failed creations, got %d", len(pools))
		}
	})
}

func TestApplyActionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	records := createPool(t, svc, "alice", 10000, []string{"bob"}, false)
	id := records[0].ID

	t.Run("borrower marks paid", func(t *testing.T) {
		rec, err := svc.ApplyAction(ctx, id, "bob", ledger.ActionMarkPaid)
		if err != nil {
			t.Fatalf("mark_paid failed: %v", err)
		}
		if rec.Status != models.StatusVerificationPending {
			t.Errorf("Status = %s, want verification_pending", rec.Status)
		}
	})

	t.Run("second mark_paid is an invalid transition", func(t *testing.T) {
		_, err := svc.ApplyAction(ctx, id, "bob", ledger.ActionMarkPaid)
		if !errors.Is(err, ledger.ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("creator rejects back to pending", func(t *testing.T) {
		rec, err := svc.ApplyAction(ctx, id, "alice", ledger.ActionReject)
		if err != nil {
			t.Fatalf("reject failed: %v", err)
		}
		if rec.Status != models.StatusPending {
			t.Errorf("Status = %s, want pending", rec.Status)
		}

		// Borrower can retry after a rejection.
		if _, err := svc.ApplyAction(ctx, id, "bob", ledger.ActionMarkPaid); err != nil {
			t.Fatalf("mark_paid after reject failed: %v", err)
		}
	})

	t.Run("creator confirms to settled", func(t *testing.T) {
		rec, err := svc.ApplyAction(ctx, id, "alice", ledger.ActionConfirm)
		if err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if rec.Status != models.StatusSettled {
			t.Errorf("Status = %s, want settled", rec.Status)
		}
	})

	t.Run("cancel on settled is an invalid transition", func(t *testing.T) {
		_, err := svc.ApplyAction(ctx, id, "alice", ledger.ActionCancel)
		if !errors.Is(err, ledger.ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestApplyActionAuthorization(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	records := createPool(t, svc, "alice", 10000, []string{"bob"}, false)
	id := records[0].ID

	tests := []struct {
		name   string
		actor  string
		action ledger.Action
	}{
		{"creator cannot mark_paid", "alice", ledger.ActionMarkPaid},
		{"borrower cannot cancel", "bob", ledger.ActionCancel},
		{"stranger cannot mark_paid", "mallory", ledger.ActionMarkPaid},
		{"stranger cannot cancel", "mallory", ledger.ActionCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ApplyAction(ctx, id, tt.actor, tt.action); !errors.Is(err, ledger.ErrUnauthorized) {
				t.Errorf("error = %v, want ErrUnauthorized", err)
			}
		})
	}

	// Borrower-side checks for the verification_pending actions.
	if _, err := svc.ApplyAction(ctx, id, "bob", ledger.ActionMarkPaid); err != nil {
		t.Fatalf("mark_paid failed: %v", err)
	}
	for _, action := range []ledger.Action{ledger.ActionConfirm, ledger.ActionReject} {
		if _, err := svc.ApplyAction(ctx, id, "bob", action); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("%s by borrower: error = %v, want ErrUnauthorized", action, err)
		}
	}
}

func TestApplyActionNotFound(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ApplyAction(context.Background(), "missing", "alice", ledger.ActionCancel); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestApplyActionRace drives two concurrent actions against the same pending
// record: exactly one must win and the loser must see a conflict, never a
// double transition or a lost update.
func TestApplyActionRace(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for range 20 {
		records := createPool(t, svc, "alice", 10000, []string{"bob"}, false)
		id := records[0].ID

		results := make([]error, 2)
		var g errgroup.Group
		g.Go(func() error {
			_, results[0] = svc.ApplyAction(ctx, id, "bob", ledger.ActionMarkPaid)
			return nil
		})
		g.Go(func() error {
			_, results[1] = svc.ApplyAction(ctx, id, "alice", ledger.ActionCancel)
			return nil
		})
		_ = g.Wait()

		var won, lost int
		for _, err := range results {
			switch {
			case err == nil:
				won++
			case errors.Is(err, ledger.ErrConflict), errors.Is(err, ledger.ErrInvalidTransition):
				// The loser may observe the conflict at the CAS or, if it
				// read after the winner committed, as an illegal transition.
				lost++
			default:
				t.Fatalf("unexpected racing error: %v", err)
			}
		}
		if won != 1 || lost != 1 {
			t.Fatalf("race resolved as %d winners, %d losers; want exactly 1 and 1", won, lost)
		}

		rec, err := svc.store.GetDebtRecord(ctx, id)
		if err != nil {
			t.Fatalf("GetDebtRecord failed: %v", err)
		}
		if rec.Status != models.StatusVerificationPending && rec.Status != models.StatusCancelled {
			t.Fatalf("record ended in %s, want exactly one consistent outcome", rec.Status)
		}
	}
}

func TestFriendBalance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// B owes A 30.00 (pending) and 20.00 (verification_pending).
	createPool(t, svc, "alice", 3000, []string{"bob"}, false)
	second := createPool(t, svc, "alice", 2000, []string{"bob"}, false)
	if _, err := svc.ApplyAction(ctx, second[0].ID, "bob", ledger.ActionMarkPaid); err != nil {
		t.Fatalf("mark_paid failed: %v", err)
	}

	net, err := svc.FriendBalance(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("FriendBalance failed: %v", err)
	}
	if net != 5000 {
		t.Errorf("FriendBalance(alice, bob) = %s, want 50.00", net)
	}

	mirrored, err := svc.FriendBalance(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("FriendBalance failed: %v", err)
	}
	if mirrored != -5000 {
		t.Errorf("FriendBalance(bob, alice) = %s, want -50.00", mirrored)
	}

	// Settling a record removes it from the live balance.
	if _, err := svc.ApplyAction(ctx, second[0].ID, "alice", ledger.ActionConfirm); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	net, err = svc.FriendBalance(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("FriendBalance failed: %v", err)
	}
	if net != 3000 {
		t.Errorf("FriendBalance after settle = %s, want 30.00", net)
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	createPool(t, svc, "alice", 3000, []string{"bob"}, false)
	createPool(t, svc, "carol", 1250, []string{"alice"}, false)
	cancelled := createPool(t, svc, "alice", 9900, []string{"dave"}, false)
	if _, err := svc.ApplyAction(ctx, cancelled[0].ID, "alice", ledger.ActionCancel); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	data, err := svc.Dashboard(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if data.TotalOwed != 3000 {
		t.Errorf("TotalOwed = %s, want 30.00", data.TotalOwed)
	}
	if data.TotalDue != 1250 {
		t.Errorf("TotalDue = %s, want 12.50", data.TotalDue)
	}

	// Recent activity includes terminal records; the just-cancelled one
	// leads the feed.
	if len(data.RecentActivity) != 3 {
		t.Fatalf("expected 3 recent records, got %d", len(data.RecentActivity))
	}
	if data.RecentActivity[0].ID != cancelled[0].ID {
		t.Errorf("RecentActivity[0] = %s, want the cancelled record", data.RecentActivity[0].ID)
	}
}
