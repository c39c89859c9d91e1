package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/poolup/backend/internal/ledger"
	"github.com/poolup/backend/internal/models"
)

const recordColumns = `id, request_id, creator_id, borrower_id, amount_owed,
	creator_included, status, chat_id, created_at, updated_at`

// CreateRequest persists an expense request and its debt records atomically.
// IDs and timestamps are generated here when unset, matching the request's
// creation time across the whole batch.
func (s *SQLiteStore) CreateRequest(ctx context.Context, req *models.ExpenseRequest, records []*models.DebtRecord) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt == 0 {
		req.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expense_requests (id, title, total_amount, creator_id, creator_included, chat_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Title, int64(req.TotalAmount), req.CreatorID, req.CreatorIncluded, req.ChatID, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense request: %w", err)
	}

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		rec.RequestID = req.ID
		if rec.CreatedAt == 0 {
			rec.CreatedAt = req.CreatedAt
		}
		if rec.UpdatedAt == 0 {
			rec.UpdatedAt = rec.CreatedAt
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO debt_records (`+recordColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.RequestID, rec.CreatorID, rec.BorrowerID, int64(rec.AmountOwed),
			rec.CreatorIncluded, string(rec.Status), rec.ChatID, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetDebtRecord retrieves a debt record by ID.
func (s *SQLiteStore) GetDebtRecord(ctx context.Context, id string) (*models.DebtRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM debt_records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debt record %s: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt record: %w", err)
	}
	return rec, nil
}

// ListByChat returns a chat's debt records in message-feed order. Ties on
// created_at (a batch insert) keep insertion order via rowid.
func (s *SQLiteStore) ListByChat(ctx context.Context, chatID string) ([]*models.DebtRecord, error) {
	return s.listRecords(ctx,
		`SELECT `+recordColumns+` FROM debt_records
		 WHERE chat_id = ? ORDER BY created_at ASC, rowid ASC`, chatID)
}

// ListByUserPair returns records between two users in both directions.
func (s *SQLiteStore) ListByUserPair(ctx context.Context, userA, userB string) ([]*models.DebtRecord, error) {
	return s.listRecords(ctx,
		`SELECT `+recordColumns+` FROM debt_records
		 WHERE (creator_id = ? AND borrower_id = ?) OR (creator_id = ? AND borrower_id = ?)
		 ORDER BY created_at ASC, rowid ASC`, userA, userB, userB, userA)
}

// ListByUser returns every record where the user is creator or borrower.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]*models.DebtRecord, error) {
	return s.listRecords(ctx,
		`SELECT `+recordColumns+` FROM debt_records
		 WHERE creator_id = ? OR borrower_id = ?
		 ORDER BY created_at ASC, rowid ASC`, userID, userID)
}

// ListRecentByUser returns the user's most recently touched records,
// newest first.
func (s *SQLiteStore) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*models.DebtRecord, error) {
	return s.listRecords(ctx,
		`SELECT `+recordColumns+` FROM debt_records
		 WHERE creator_id = ? OR borrower_id = ?
		 ORDER BY updated_at DESC, rowid DESC LIMIT ?`, userID, userID, limit)
}

// UpdateStatus performs the compare-and-swap the settlement state machine
// relies on: the UPDATE only matches while the status still equals expected,
// so two racing transitions resolve as one success and one ErrConflict.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, expected, next models.Status) (*models.DebtRecord, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE debt_records SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(next), time.Now().UnixMilli(), id, string(expected),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		// Disambiguate: missing record vs. a concurrent transition.
		if _, err := s.GetDebtRecord(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("debt record %s no longer %s: %w", id, expected, ledger.ErrConflict)
	}

	return s.GetDebtRecord(ctx, id)
}

func (s *SQLiteStore) listRecords(ctx context.Context, query string, args ...any) ([]*models.DebtRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt records: %w", err)
	}
	defer rows.Close()

	var records []*models.DebtRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt records: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.DebtRecord, error) {
	rec := &models.DebtRecord{}
	var amount int64
	var status string
	if err := row.Scan(&rec.ID, &rec.RequestID, &rec.CreatorID, &rec.BorrowerID, &amount,
		&rec.CreatorIncluded, &status, &rec.ChatID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.AmountOwed = models.Cents(amount)
	rec.Status = models.Status(status)
	return rec, nil
}
