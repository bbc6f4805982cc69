package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "trustnet-backend/pkg/errors"
)

func TestNew(t *testing.T) {
	got, err := New("user-1", "  https://phish.example.com/login  ", TypeURL, "fake bank login")

	require.NoError(t, err)
	assert.NotEmpty(t, got.ThreatID)
	assert.Equal(t, "user-1", got.SubmittedBy)
	assert.Equal(t, "https://phish.example.com/login", got.Artifact, "artifact is trimmed")
	assert.Equal(t, StatusUnverified, got.Status)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, Viewable, got.Viewable)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name         string
		submittedBy  string
		artifact     string
		artifactType ArtifactType
	}{
		{"empty submitter", "", "https://phish.example.com", TypeURL},
		{"empty artifact", "user-1", "   ", TypeURL},
		{"unknown type", "user-1", "https://phish.example.com", ArtifactType("ip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.submittedBy, tt.artifact, tt.artifactType, "")
			assert.Nil(t, got)
			assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
		})
	}
}

func TestToggleStatus(t *testing.T) {
	th, err := New("user-1", "+1-555-0100", TypePhone, "robocall")
	require.NoError(t, err)

	assert.Equal(t, StatusVerified, th.ToggleStatus())
	assert.True(t, th.IsVerified())
	assert.Equal(t, StatusUnverified, th.ToggleStatus())
	assert.False(t, th.IsVerified())
}

func TestArtifactTypeValid(t *testing.T) {
	assert.True(t, TypeURL.Valid())
	assert.True(t, TypeEmail.Valid())
	assert.True(t, TypePhone.Valid())
	assert.False(t, ArtifactType("").Valid())
	assert.False(t, ArtifactType("domain").Valid())
}
