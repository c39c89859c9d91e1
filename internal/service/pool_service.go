// Package service orchestrates the ledger engine: it wires the split
// calculator, the settlement state machine, and the store together behind
// the operations the chat, dashboard, and profile surfaces call.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poolup/backend/internal/calculator"
	"github.com/poolup/backend/internal/ledger"
	"github.com/poolup/backend/internal/metrics"
	"github.com/poolup/backend/internal/models"
	"github.com/poolup/backend/internal/storage"
)

// PoolService is the expense pool ledger engine. Every method takes the
// acting user explicitly; identity is never read from ambient state.
type PoolService struct {
	store storage.Store
}

// NewPoolService creates a PoolService on the given storage backend.
func NewPoolService(store storage.Store) *PoolService {
	return &PoolService{store: store}
}

// CreatePoolParams are the inputs for recording a new expense.
type CreatePoolParams struct {
	// Title is the cause of the expense. Must be non-blank.
	Title string

	// TotalAmount is the full bill. Must be positive.
	TotalAmount models.Cents

	// ParticipantIDs are the non-creator users who owe a share. Must be
	// non-empty, free of duplicates, and must not contain the creator.
	ParticipantIDs []string

	// CreatorIncluded selects "Split Equally" (creator owes a share too)
	// over "Full Amount" (participants cover everything).
	CreatorIncluded bool

	// ChatID is the conversation the expense belongs to.
	ChatID string
}

// CreatePool validates the request, computes shares, and persists the
// expense request plus one pending debt record per participant in a single
// transaction. The returned split carries the creator's implicit share for
// display; it is never stored.
func (s *PoolService) CreatePool(ctx context.Context, actorID string, params CreatePoolParams) (*models.ExpenseRequest, []*models.DebtRecord, calculator.Split, error) {
	var split calculator.Split

	if strings.TrimSpace(params.Title) == "" {
		return nil, nil, split, fmt.Errorf("%w: title must not be blank", ledger.ErrValidation)
	}
	if params.ChatID == "" {
		return nil, nil, split, fmt.Errorf("%w: chat id is required", ledger.ErrValidation)
	}
	seen := make(map[string]bool, len(params.ParticipantIDs))
	for _, id := range params.ParticipantIDs {
		if id == actorID {
			return nil, nil, split, fmt.Errorf("%w: creator cannot owe themselves", ledger.ErrValidation)
		}
		if seen[id] {
			return nil, nil, split, fmt.Errorf("%w: duplicate participant %s", ledger.ErrValidation, id)
		}
		seen[id] = true
	}

	split, err := calculator.ComputeShares(params.TotalAmount, len(params.ParticipantIDs), params.CreatorIncluded)
	if err != nil {
		return nil, nil, split, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}

	req := &models.ExpenseRequest{
		Title:           strings.TrimSpace(params.Title),
		TotalAmount:     params.TotalAmount,
		CreatorID:       actorID,
		CreatorIncluded: params.CreatorIncluded,
		ChatID:          params.ChatID,
	}

	records := make([]*models.DebtRecord, 0, len(params.ParticipantIDs))
	for _, borrowerID := range params.ParticipantIDs {
		records = append(records, &models.DebtRecord{
			CreatorID:       actorID,
			BorrowerID:      borrowerID,
			AmountOwed:      split.PerShare,
			CreatorIncluded: params.CreatorIncluded,
			Status:          models.StatusPending,
			ChatID:          params.ChatID,
		})
	}

	if err := s.store.CreateRequest(ctx, req, records); err != nil {
		slog.Error("create pool failed", "creator_id", actorID, "chat_id", params.ChatID, "error", err)
		return nil, nil, split, err
	}

	splitLabel := "full_amount"
	if params.CreatorIncluded {
		splitLabel = "equal"
	}
	metrics.PoolsCreated.WithLabelValues(splitLabel).Inc()
	slog.Info("pool created",
		"request_id", req.ID,
		"creator_id", actorID,
		"chat_id", params.ChatID,
		"total", params.TotalAmount,
		"participants", len(records),
		"per_share", split.PerShare,
	)
	return req, records, split, nil
}

// ApplyAction advances one debt record through the settlement state machine
// on behalf of actorID. The status update is a compare-and-swap against the
// status that was read, so a racing transition surfaces as ErrConflict
// rather than a lost update. No other record is touched.
func (s *PoolService) ApplyAction(ctx context.Context, recordID, actorID string, action ledger.Action) (*models.DebtRecord, error) {
	rec, err := s.store.GetDebtRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	role, next, err := ledger.Next(rec.Status, action)
	if err != nil {
		metrics.SettlementTransitions.WithLabelValues(string(action), "invalid").Inc()
		return nil, err
	}

	required := rec.CreatorID
	if role == ledger.RoleBorrower {
		required = rec.BorrowerID
	}
	if actorID != required {
		metrics.SettlementTransitions.WithLabelValues(string(action), "unauthorized").Inc()
		return nil, fmt.Errorf("%w: %s requires the %s", ledger.ErrUnauthorized, action, role)
	}

	updated, err := s.store.UpdateStatus(ctx, recordID, rec.Status, next)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ledger.ErrConflict) {
			outcome = "conflict"
			slog.Warn("settlement action lost race",
				"record_id", recordID, "actor_id", actorID, "action", action)
		}
		metrics.SettlementTransitions.WithLabelValues(string(action), outcome).Inc()
		return nil, err
	}

	metrics.SettlementTransitions.WithLabelValues(string(action), "ok").Inc()
	slog.Info("settlement action applied",
		"record_id", recordID,
		"actor_id", actorID,
		"action", action,
		"from", rec.Status,
		"to", updated.Status,
	)
	return updated, nil
}

// ChatPools returns the debt records visible in a chat, in message-feed order.
func (s *PoolService) ChatPools(ctx context.Context, chatID string) ([]*models.DebtRecord, error) {
	return s.store.ListByChat(ctx, chatID)
}

// FriendBalance computes the live net balance between the viewer and another
// user. Positive means the other user owes the viewer. Recomputed from
// current record state on every call.
func (s *PoolService) FriendBalance(ctx context.Context, viewerID, otherID string) (models.Cents, error) {
	records, err := s.store.ListByUserPair(ctx, viewerID, otherID)
	if err != nil {
		return 0, err
	}
	return calculator.NetBalance(viewerID, otherID, records), nil
}

// DashboardData is what the dashboard surface renders.
type DashboardData struct {
	calculator.Totals
	RecentActivity []*models.DebtRecord `json:"recentActivity"`
}

// Dashboard returns the viewer's active totals and most recent activity.
func (s *PoolService) Dashboard(ctx context.Context, viewerID string, limit int) (*DashboardData, error) {
	records, err := s.store.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.ListRecentByUser(ctx, viewerID, limit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*models.DebtRecord{}
	}

	return &DashboardData{
		Totals:         calculator.DashboardTotals(viewerID, records),
		RecentActivity: recent,
	}, nil
}
