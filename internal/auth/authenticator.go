package auth

import (
	"context"

	"github.com/poolup/backend/internal/models"
)

// Authenticator verifies who a caller is. The ledger engine trusts the user ID
// this subsystem produces and performs no credential checking of its own.
type Authenticator interface {
	// Register creates a new account. The credential format depends on the
	// implementation (password today; passkeys or OAuth tokens later).
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
