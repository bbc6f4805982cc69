package threat

import (
	"strings"

	"github.com/google/uuid"

	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/utils"
)

// ArtifactType classifies the reported artifact
type ArtifactType string

const (
	TypeURL   ArtifactType = "url"
	TypeEmail ArtifactType = "email"
	TypePhone ArtifactType = "phone"
)

// Status represents the verification state of a threat
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusVerified   Status = "verified"
)

// Viewable is the fixed partition marker carried on every threat record.
const Viewable = "THREATS"

// Key uniquely identifies a threat record: threatId is the partition key,
// createdAt the sort key.
type Key struct {
	ThreatID  string `json:"threatId"`
	CreatedAt string `json:"createdAt"`
}

// Threat is a reported digital threat (phishing URL, scam phone number,
// fraudulent email address). The Likes counter is denormalized and kept in
// sync with the like membership table by the like toggle protocol.
type Threat struct {
	ThreatID    string       `json:"threatId" dynamodbav:"threatId"`
	CreatedAt   string       `json:"createdAt" dynamodbav:"createdAt"`
	SubmittedBy string       `json:"submittedBy" dynamodbav:"submittedBy"`
	Artifact    string       `json:"artifact" dynamodbav:"artifact"`
	Type        ArtifactType `json:"type" dynamodbav:"type"`
	Description string       `json:"description" dynamodbav:"description"`
	Status      Status       `json:"status" dynamodbav:"status"`
	Likes       int          `json:"likes" dynamodbav:"likes"`
	UpdatedAt   string       `json:"updatedAt" dynamodbav:"updatedAt"`
	Viewable    string       `json:"viewable" dynamodbav:"viewable"`
}

// New creates an unverified threat with a zero like counter
func New(submittedBy, artifact string, artifactType ArtifactType, description string) (*Threat, error) {
	if submittedBy == "" {
		return nil, pkgerrors.NewValidationError("submittedBy cannot be empty")
	}
	artifact = strings.TrimSpace(artifact)
	if artifact == "" {
		return nil, pkgerrors.NewValidationError("artifact cannot be empty")
	}
	if !artifactType.Valid() {
		return nil, pkgerrors.NewValidationError("type must be one of url, email, phone")
	}

	now := utils.NowRFC3339()
	return &Threat{
		ThreatID:    uuid.NewString(),
		CreatedAt:   now,
		SubmittedBy: submittedBy,
		Artifact:    artifact,
		Type:        artifactType,
		Description: description,
		Status:      StatusUnverified,
		Likes:       0,
		UpdatedAt:   now,
		Viewable:    Viewable,
	}, nil
}

// Key returns the record's composite key
func (t *Threat) Key() Key {
	return Key{ThreatID: t.ThreatID, CreatedAt: t.CreatedAt}
}

// IsVerified reports whether the threat has been verified by an admin
func (t *Threat) IsVerified() bool {
	return t.Status == StatusVerified
}

// ToggleStatus flips the verification state and returns the new status
func (t *Threat) ToggleStatus() Status {
	if t.Status == StatusVerified {
		t.Status = StatusUnverified
	} else {
		t.Status = StatusVerified
	}
	t.UpdatedAt = utils.NowRFC3339()
	return t.Status
}

// Touch refreshes the updatedAt timestamp
func (t *Threat) Touch() {
	t.UpdatedAt = utils.NowRFC3339()
}

// Valid reports whether the artifact type is one of the known kinds
func (at ArtifactType) Valid() bool {
	switch at {
	case TypeURL, TypeEmail, TypePhone:
		return true
	}
	return false
}
