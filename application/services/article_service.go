package services

import (
	"context"

	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/content"
	pkgerrors "trustnet-backend/pkg/errors"
)

// ArticleService handles the education hub articles
type ArticleService struct {
	articles ports.ArticleRepository
	blobs    ports.BlobStore
	logger   *zap.Logger
}

// NewArticleService creates a new article service
func NewArticleService(articles ports.ArticleRepository, blobs ports.BlobStore, logger *zap.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		blobs:    blobs,
		logger:   logger,
	}
}

// Create publishes a new article; titles are unique across the hub
func (s *ArticleService) Create(ctx context.Context, userID, title, body, imageKey string) (*content.Article, error) {
	existing, err := s.articles.GetByTitle(ctx, title)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("check title", err)
	}
	if existing != nil {
		return nil, pkgerrors.NewConflictError("an article with this title already exists")
	}

	a, err := content.NewArticle(userID, title, body, imageKey)
	if err != nil {
		return nil, err
	}

	if err := s.articles.Save(ctx, a); err != nil {
		return nil, pkgerrors.NewDatabaseError("save article", err)
	}

	s.logger.Info("Article created",
		zap.String("articleID", a.ArticleID),
		zap.String("userID", userID),
	)
	return a, nil
}

// Get retrieves an article by ID
func (s *ArticleService) Get(ctx context.Context, articleID string) (*content.Article, error) {
	a, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get article", err)
	}
	if a == nil {
		return nil, pkgerrors.NewNotFoundError("article")
	}
	return a, nil
}

// List retrieves all articles
func (s *ArticleService) List(ctx context.Context) ([]*content.Article, error) {
	items, err := s.articles.List(ctx)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list articles", err)
	}
	return items, nil
}

// ListByAuthor retrieves a user's articles
func (s *ArticleService) ListByAuthor(ctx context.Context, userID string) ([]*content.Article, error) {
	items, err := s.articles.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list articles by author", err)
	}
	return items, nil
}

// UpdateArticleInput carries editable article fields
type UpdateArticleInput struct {
	Title    *string
	Body     *string
	ImageKey *string
}

// Update edits an article; only the author or an admin may edit
func (s *ArticleService) Update(ctx context.Context, callerID string, isAdmin bool, articleID string, input UpdateArticleInput) (*content.Article, error) {
	a, err := s.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a.UserID != callerID && !isAdmin {
		return nil, pkgerrors.NewForbiddenError("only the author or an admin can edit an article")
	}

	if input.Title != nil && *input.Title != a.Title {
		existing, err := s.articles.GetByTitle(ctx, *input.Title)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("check title", err)
		}
		if existing != nil {
			return nil, pkgerrors.NewConflictError("an article with this title already exists")
		}
		a.Title = *input.Title
	}
	if input.Body != nil {
		a.Body = *input.Body
	}
	if input.ImageKey != nil {
		a.ImageKey = *input.ImageKey
	}
	a.Touch()

	if err := s.articles.Save(ctx, a); err != nil {
		return nil, pkgerrors.NewDatabaseError("update article", err)
	}
	return a, nil
}

// Delete removes an article and best-effort deletes its cover image
func (s *ArticleService) Delete(ctx context.Context, callerID string, isAdmin bool, articleID string) error {
	a, err := s.Get(ctx, articleID)
	if err != nil {
		return err
	}
	if a.UserID != callerID && !isAdmin {
		return pkgerrors.NewForbiddenError("only the author or an admin can delete an article")
	}

	if a.ImageKey != "" {
		if err := s.blobs.DeleteObject(ctx, a.ImageKey); err != nil {
			s.logger.Warn("Failed to delete article image",
				zap.String("articleID", articleID),
				zap.String("imageKey", a.ImageKey),
				zap.Error(err),
			)
		}
	}

	if err := s.articles.Delete(ctx, articleID); err != nil {
		return pkgerrors.NewDatabaseError("delete article", err)
	}
	return nil
}
