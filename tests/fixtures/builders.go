// Package fixtures provides builders for test entities with sensible defaults.
package fixtures

import (
	"github.com/google/uuid"

	"trustnet-backend/domain/content"
	"trustnet-backend/domain/threat"
	"trustnet-backend/domain/user"
	"trustnet-backend/pkg/utils"
)

// ThreatBuilder helps create test threats with default values
type ThreatBuilder struct {
	t threat.Threat
}

func NewThreatBuilder() *ThreatBuilder {
	now := utils.NowRFC3339()
	return &ThreatBuilder{t: threat.Threat{
		ThreatID:    uuid.NewString(),
		CreatedAt:   now,
		SubmittedBy: "test-user-123",
		Artifact:    "https://phish.example.com/login",
		Type:        threat.TypeURL,
		Description: "Test phishing page",
		Status:      threat.StatusUnverified,
		Likes:       0,
		UpdatedAt:   now,
		Viewable:    threat.Viewable,
	}}
}

func (b *ThreatBuilder) WithID(id string) *ThreatBuilder {
	b.t.ThreatID = id
	return b
}

func (b *ThreatBuilder) WithCreatedAt(createdAt string) *ThreatBuilder {
	b.t.CreatedAt = createdAt
	return b
}

func (b *ThreatBuilder) WithSubmitter(userID string) *ThreatBuilder {
	b.t.SubmittedBy = userID
	return b
}

func (b *ThreatBuilder) WithArtifact(artifact string, artifactType threat.ArtifactType) *ThreatBuilder {
	b.t.Artifact = artifact
	b.t.Type = artifactType
	return b
}

func (b *ThreatBuilder) WithStatus(status threat.Status) *ThreatBuilder {
	b.t.Status = status
	return b
}

func (b *ThreatBuilder) WithLikes(likes int) *ThreatBuilder {
	b.t.Likes = likes
	return b
}

func (b *ThreatBuilder) Build() *threat.Threat {
	t := b.t
	return &t
}

// LikeFor creates a like membership row for a threat
func LikeFor(userID string, t *threat.Threat) threat.Like {
	return threat.Like{
		UserID:    userID,
		ThreatID:  t.ThreatID,
		CreatedAt: utils.NowRFC3339(),
	}
}

// UserBuilder helps create test users with default values
type UserBuilder struct {
	u user.User
}

func NewUserBuilder() *UserBuilder {
	now := utils.NowRFC3339()
	return &UserBuilder{u: user.User{
		UserID:       uuid.NewString(),
		Email:        "test@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         user.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}
}

func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.u.UserID = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.u.Email = email
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.u.PasswordHash = hash
	return b
}

func (b *UserBuilder) WithPicture(key string) *UserBuilder {
	b.u.Picture = key
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.u.Role = user.RoleAdmin
	return b
}

func (b *UserBuilder) Build() *user.User {
	u := b.u
	return &u
}

// ArticleBuilder helps create test articles with default values
type ArticleBuilder struct {
	a content.Article
}

func NewArticleBuilder() *ArticleBuilder {
	now := utils.NowRFC3339()
	return &ArticleBuilder{a: content.Article{
		ArticleID: uuid.NewString(),
		UserID:    "test-user-123",
		Title:     "How to spot phishing",
		Body:      "Look closely at the sender address.",
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (b *ArticleBuilder) WithAuthor(userID string) *ArticleBuilder {
	b.a.UserID = userID
	return b
}

func (b *ArticleBuilder) WithTitle(title string) *ArticleBuilder {
	b.a.Title = title
	return b
}

func (b *ArticleBuilder) WithImage(key string) *ArticleBuilder {
	b.a.ImageKey = key
	return b
}

func (b *ArticleBuilder) Build() *content.Article {
	a := b.a
	return &a
}

// ReportBuilder helps create test scam reports with default values
type ReportBuilder struct {
	r content.ScamReport
}

func NewReportBuilder() *ReportBuilder {
	now := utils.NowRFC3339()
	return &ReportBuilder{r: content.ScamReport{
		ReportID:    uuid.NewString(),
		CreatedAt:   now,
		UserID:      "test-user-123",
		Title:       "Fake support call",
		Description: "Caller claimed to be my bank.",
		UpdatedAt:   now,
	}}
}

func (b *ReportBuilder) WithAuthor(userID string) *ReportBuilder {
	b.r.UserID = userID
	return b
}

func (b *ReportBuilder) WithImage(key string) *ReportBuilder {
	b.r.ImageKey = key
	return b
}

func (b *ReportBuilder) Build() *content.ScamReport {
	r := b.r
	return &r
}
