package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/user"
	"trustnet-backend/pkg/auth"
	pkgerrors "trustnet-backend/pkg/errors"
)

// UserService handles account registration, login, and profile edits.
// Account deletion goes through the cascade service instead.
type UserService struct {
	users  ports.UserRepository
	tokens *auth.JWTGenerator
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users ports.UserRepository, tokens *auth.JWTGenerator, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a customer account. Email uniqueness follows the same
// existence-check-then-insert pattern as threat artifacts.
func (s *UserService) Register(ctx context.Context, email, firstName, lastName, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("check email", err)
	}
	if existing != nil {
		return nil, pkgerrors.NewConflictError("an account with this email already exists")
	}

	u, err := user.New(email, firstName, lastName, password)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, pkgerrors.NewDatabaseError("save user", err)
	}

	s.logger.Info("User registered", zap.String("userID", u.UserID))
	return u, nil
}

// Login checks credentials and issues a session token
func (s *UserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, pkgerrors.NewDatabaseError("get user", err)
	}
	if u == nil || !u.CheckPassword(password) {
		return "", nil, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(u.UserID, u.Email, string(u.Role))
	if err != nil {
		return "", nil, pkgerrors.NewInternalError("failed to issue token").WithCause(err)
	}

	return token, u, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}
	if u == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return u, nil
}

// UpdateUserInput carries editable profile fields
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Picture   *string
}

// Update edits a user's profile. Callers may edit themselves; admins may
// edit anyone.
func (s *UserService) Update(ctx context.Context, callerID string, isAdmin bool, userID string, input UpdateUserInput) (*user.User, error) {
	if callerID != userID && !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only the account owner or an admin can edit a profile")
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Picture != nil {
		u.Picture = *input.Picture
	}
	u.Touch()

	if err := s.users.Save(ctx, u); err != nil {
		return nil, pkgerrors.NewDatabaseError("update user", err)
	}
	return u, nil
}
