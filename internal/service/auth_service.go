package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/shiftline/internal/domain"
)

// AuthService handles authentication. Every request re-authenticates
// against stored credentials; no sessions or tokens are issued.
type AuthService struct {
	users  domain.UserRepository
	logger *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users domain.UserRepository, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{users: users, logger: logger}
}

// LoginResult is what a successful login reveals about the account.
// EmployeeID is nil for the seed admin.
type LoginResult struct {
	Username   string
	Role       string
	EmployeeID *int64
}

// Login verifies credentials. Any mismatch, including an unknown
// username, comes back as ErrAuthentication with no further detail.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", domain.ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("login attempt for unknown user", slog.String("username", username))
			return nil, domain.ErrAuthentication
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed", slog.String("username", username))
		return nil, domain.ErrAuthentication
	}

	s.logger.Info("user logged in",
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)

	return &LoginResult{
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
	}, nil
}

// EnsureAdmin seeds the admin account at first startup if it does not
// exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.users.GetByUsername(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("seed admin user created", slog.String("username", "admin"))
	return nil
}
