package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poolup/backend/internal/auth"
	"github.com/poolup/backend/internal/models"
)

// AuthService couples an Authenticator with session token issuance. It is the
// subsystem that turns credentials into the trusted actor identity the ledger
// engine receives on every call.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwtManager: jwtManager}
}

// Signup registers a new account and returns the user with a session token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates an existing account and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}
