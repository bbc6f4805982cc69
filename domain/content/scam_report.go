package content

import (
	"github.com/google/uuid"

	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/utils"
)

// ScamReport is a free-form scam report submitted by a user, optionally with
// an evidence image in the blob store.
type ScamReport struct {
	ReportID    string `json:"reportId" dynamodbav:"reportId"`
	CreatedAt   string `json:"createdAt" dynamodbav:"createdAt"`
	UserID      string `json:"userId" dynamodbav:"userId"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	ImageKey    string `json:"imageKey,omitempty" dynamodbav:"imageKey,omitempty"`
	UpdatedAt   string `json:"updatedAt" dynamodbav:"updatedAt"`
}

// ReportKey identifies a scam report: reportId partition key, createdAt sort key.
type ReportKey struct {
	ReportID  string `json:"reportId"`
	CreatedAt string `json:"createdAt"`
}

// NewScamReport creates a scam report owned by userID
func NewScamReport(userID, title, description, imageKey string) (*ScamReport, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userId cannot be empty")
	}
	if description == "" {
		return nil, pkgerrors.NewValidationError("description cannot be empty")
	}

	now := utils.NowRFC3339()
	return &ScamReport{
		ReportID:    uuid.NewString(),
		CreatedAt:   now,
		UserID:      userID,
		Title:       title,
		Description: description,
		ImageKey:    imageKey,
		UpdatedAt:   now,
	}, nil
}

// Key returns the report's composite key
func (r *ScamReport) Key() ReportKey {
	return ReportKey{ReportID: r.ReportID, CreatedAt: r.CreatedAt}
}

// Touch refreshes the updatedAt timestamp
func (r *ScamReport) Touch() {
	r.UpdatedAt = utils.NowRFC3339()
}
