// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/poolup/backend/internal/models"
)

// Store defines the persistence contract of the ledger engine. The backend
// must provide atomic multi-record insert, conditional single-record update,
// and indexed lookup by id, chat, and user; everything else lives above it.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, ...)
// without changing the service layer.
type Store interface {
	// CreateRequest persists an expense request and its debt records in one
	// transaction: either every record exists afterwards or none do. IDs and
	// timestamps are assigned by the store when unset.
	CreateRequest(ctx context.Context, req *models.ExpenseRequest, records []*models.DebtRecord) error

	// GetDebtRecord retrieves a single debt record by ID.
	// Fails with ledger.ErrNotFound if absent.
	GetDebtRecord(ctx context.Context, id string) (*models.DebtRecord, error)

	// ListByChat returns every debt record visible in a chat, ordered by
	// creation time ascending (message-feed order).
	ListByChat(ctx context.Context, chatID string) ([]*models.DebtRecord, error)

	// ListByUserPair returns records between two users in both directions:
	// userA as creator with userB as borrower, and vice versa.
	ListByUserPair(ctx context.Context, userA, userB string) ([]*models.DebtRecord, error)

	// ListByUser returns every record where the user is creator or borrower.
	ListByUser(ctx context.Context, userID string) ([]*models.DebtRecord, error)

	// ListRecentByUser returns the most recently updated records touching the
	// user, newest first, independent of status.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*models.DebtRecord, error)

	// UpdateStatus performs a compare-and-swap on a record's status: the
	// update applies only if the current status still equals expected.
	// Fails with ledger.ErrNotFound for an unknown ID and ledger.ErrConflict
	// when the record moved on since it was read.
	UpdateStatus(ctx context.Context, id string, expected, next models.Status) (*models.DebtRecord, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by login email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
