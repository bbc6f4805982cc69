package user

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/utils"
)

// Role represents the user's access level
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is a registered TrustNet account. PasswordHash holds the bcrypt hash
// of the account password and never leaves the backend.
type User struct {
	UserID       string `json:"userId" dynamodbav:"userId"`
	Email        string `json:"email" dynamodbav:"email"`
	FirstName    string `json:"firstName" dynamodbav:"firstName"`
	LastName     string `json:"lastName" dynamodbav:"lastName"`
	PasswordHash string `json:"-" dynamodbav:"passwordHash"`
	Picture      string `json:"picture,omitempty" dynamodbav:"picture,omitempty"`
	Role         Role   `json:"role" dynamodbav:"role"`
	CreatedAt    string `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt    string `json:"updatedAt" dynamodbav:"updatedAt"`
}

// New creates a customer account with a bcrypt-hashed password
func New(email, firstName, lastName, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}
	if password == "" {
		return nil, pkgerrors.NewValidationError("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to hash password").WithCause(err)
	}

	now := utils.NowRFC3339()
	return &User{
		UserID:       uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		Role:         RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword reports whether the candidate matches the stored hash
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Touch refreshes the updatedAt timestamp
func (u *User) Touch() {
	u.UpdatedAt = utils.NowRFC3339()
}
