package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := New("  Alice@Example.COM ", "Alice", "Smith", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
	assert.Equal(t, RoleCustomer, u.Role)
	assert.NotEqual(t, "correct-horse", u.PasswordHash, "password is never stored as submitted")
	assert.True(t, u.CheckPassword("correct-horse"))
	assert.False(t, u.CheckPassword("wrong-horse"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "Alice", "Smith", "correct-horse")
	assert.Error(t, err)

	_, err = New("alice@example.com", "Alice", "Smith", "")
	assert.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	u, err := New("alice@example.com", "Alice", "Smith", "correct-horse")
	require.NoError(t, err)

	assert.False(t, u.IsAdmin())
	u.Role = RoleAdmin
	assert.True(t, u.IsAdmin())
}
