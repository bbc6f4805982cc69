package content

import (
	"strings"

	"github.com/google/uuid"

	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/pkg/utils"
)

// Article is an education hub post owned by a user. The cover image lives in
// the blob store under ImageKey and is deleted best-effort with the article.
type Article struct {
	ArticleID string `json:"articleId" dynamodbav:"articleId"`
	UserID    string `json:"userId" dynamodbav:"userId"`
	Title     string `json:"title" dynamodbav:"title"`
	Body      string `json:"body" dynamodbav:"body"`
	ImageKey  string `json:"imageKey,omitempty" dynamodbav:"imageKey,omitempty"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt string `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewArticle creates an article owned by userID
func NewArticle(userID, title, body, imageKey string) (*Article, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userId cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if body == "" {
		return nil, pkgerrors.NewValidationError("body cannot be empty")
	}

	now := utils.NowRFC3339()
	return &Article{
		ArticleID: uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		ImageKey:  imageKey,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch refreshes the updatedAt timestamp
func (a *Article) Touch() {
	a.UpdatedAt = utils.NowRFC3339()
}
