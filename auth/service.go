package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/config"
	"github.com/RobertLib/todo-api/validation"
)

const (
	// hashCost is the bcrypt cost factor for new passwords. 10 matches
	// bcrypt.DefaultCost; raising it invalidates no existing hash, only
	// slows new registrations.
	hashCost = bcrypt.DefaultCost

	// pgUniqueViolation is the PostgreSQL error code for unique constraint
	// violations.
	pgUniqueViolation = "23505"

	// invalidCredentials is returned for both an unknown email and a wrong
	// password, so a caller cannot probe which addresses are registered.
	invalidCredentials = "Invalid credentials"
)

// Service implements registration and login.
type Service struct {
	store UserStore
	cfg   config.AuthConfig
}

// NewService creates a Service with its dependencies injected.
func NewService(store UserStore, cfg config.AuthConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// Register creates a new account and issues a token bound to it. A taken
// email yields a Conflict error; the password is stored only as a bcrypt
// hash.
func (s *Service) Register(ctx context.Context, in *validation.RegisterInput) (*AuthResponse, error) {
	exists, err := s.store.ExistsWithEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create user", err)
	}
	if exists {
		return nil, apperror.NewConflictError("User with this email already exists", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to create user", err)
	}

	user, err := s.store.Insert(ctx, in.Email, string(hashedPassword))
	if err != nil {
		// The unique index is the authority; the exists check above can lose
		// a race with a concurrent registration.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("User with this email already exists", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to create user", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user.Response(), Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in *validation.LoginInput) (*AuthResponse, error) {
	user, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to log in", err)
	}
	if user == nil {
		return nil, apperror.NewAuthError(invalidCredentials, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		return nil, apperror.NewAuthError(invalidCredentials, nil)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user.Response(), Token: token}, nil
}

func (s *Service) issueToken(userID int) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", apperror.NewConfigError("Server configuration error", errors.New("JWT secret is not set"))
	}
	token, err := GenerateToken(userID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		return "", apperror.NewInternalError("Failed to generate token", err)
	}
	return token, nil
}
