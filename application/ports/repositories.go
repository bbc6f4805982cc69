package ports

import (
	"context"
	"errors"
	"time"

	"trustnet-backend/domain/content"
	"trustnet-backend/domain/events"
	"trustnet-backend/domain/threat"
	"trustnet-backend/domain/user"
)

// Sentinel errors surfaced by the like repository's conditional transactions.
// The transaction cancellation reasons are classified into these so callers
// can tell an idempotency race apart from a genuine precondition failure.
var (
	// ErrAlreadyLiked means the membership-row guard rejected the insert:
	// another request (or an earlier one) already recorded the like.
	ErrAlreadyLiked = errors.New("threat already liked by user")

	// ErrNotLiked means the membership-row guard rejected the delete, or the
	// counter guard found likes already at zero: there is nothing to unlike.
	ErrNotLiked = errors.New("threat not liked by user")

	// ErrThreatGone means the threat-row existence guard rejected the counter
	// update: the threat was deleted between lookup and commit.
	ErrThreatGone = errors.New("threat no longer exists")
)

// ThreatRepository defines the interface for threat persistence
type ThreatRepository interface {
	// Save persists a threat (create or full update)
	Save(ctx context.Context, t *threat.Threat) error

	// GetByKey retrieves a threat by its composite key
	GetByKey(ctx context.Context, key threat.Key) (*threat.Threat, error)

	// GetByArtifact retrieves a threat by its globally unique artifact.
	// Returns nil without error when no threat matches.
	GetByArtifact(ctx context.Context, artifact string) (*threat.Threat, error)

	// List retrieves all viewable threats
	List(ctx context.Context) ([]*threat.Threat, error)

	// ListByStatus retrieves threats in a verification state
	ListByStatus(ctx context.Context, status threat.Status) ([]*threat.Threat, error)

	// ListBySubmitter retrieves threats submitted by a user
	ListBySubmitter(ctx context.Context, userID string) ([]*threat.Threat, error)

	// Delete removes a single threat record
	Delete(ctx context.Context, key threat.Key) error
}

// LikeRepository defines the interface for like membership persistence and
// the conditional like/unlike transactions.
type LikeRepository interface {
	// Get retrieves the membership row for (userID, threatID).
	// Returns nil without error when the user has not liked the threat.
	Get(ctx context.Context, userID, threatID string) (*threat.Like, error)

	// ListByThreat retrieves all likes on a threat via the reverse index
	ListByThreat(ctx context.Context, threatID string) ([]threat.Like, error)

	// ListByUser retrieves all likes placed by a user
	ListByUser(ctx context.Context, userID string) ([]threat.Like, error)

	// Like atomically increments the threat's counter and inserts the
	// membership row. Returns ErrAlreadyLiked or ErrThreatGone on guard
	// failure; both leave the store untouched.
	Like(ctx context.Context, userID string, key threat.Key) error

	// Unlike atomically decrements the counter (guarded above zero) and
	// deletes the membership row. Returns ErrNotLiked or ErrThreatGone on
	// guard failure; both leave the store untouched.
	Unlike(ctx context.Context, userID string, key threat.Key) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, userID string) (*user.User, error)

	// GetByEmail returns nil without error when no user matches.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	List(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, userID string) error
}

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	Save(ctx context.Context, a *content.Article) error
	GetByID(ctx context.Context, articleID string) (*content.Article, error)

	// GetByTitle returns nil without error when no article matches.
	GetByTitle(ctx context.Context, title string) (*content.Article, error)

	List(ctx context.Context) ([]*content.Article, error)
	ListByAuthor(ctx context.Context, userID string) ([]*content.Article, error)
	Delete(ctx context.Context, articleID string) error
}

// ReportRepository defines the interface for scam report persistence
type ReportRepository interface {
	Save(ctx context.Context, r *content.ScamReport) error
	GetByKey(ctx context.Context, key content.ReportKey) (*content.ScamReport, error)
	List(ctx context.Context) ([]*content.ScamReport, error)
	ListByAuthor(ctx context.Context, userID string) ([]*content.ScamReport, error)
	Delete(ctx context.Context, key content.ReportKey) error
}

// BatchDeleter issues bounded multi-table batch deletes. Records are chunked
// to the store's 25-item batch limit; unprocessed items from partial batch
// failures are returned, never retried.
type BatchDeleter interface {
	BatchDelete(ctx context.Context, records []DeletableRecord) (unprocessed []DeletableRecord, err error)
}

// BlobStore abstracts the object store holding uploaded images
type BlobStore interface {
	// DeleteObject removes an object; callers treat failures as non-fatal
	DeleteObject(ctx context.Context, key string) error

	// PresignUpload issues a presigned PUT URL for a direct client upload
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}

// Notifier is the best-effort notification side-channel. Every method is
// fire-and-forget from the caller's perspective: errors are returned for
// logging only and must never fail the triggering operation.
type Notifier interface {
	// Subscribe adds an email to the verification topic; duplicate-safe
	Subscribe(ctx context.Context, email string) error

	// PublishThreatVerified notifies confirmed subscribers that a threat
	// was verified
	PublishThreatVerified(ctx context.Context, t *threat.Threat, submitterEmail string) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
