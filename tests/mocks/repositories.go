// Package mocks provides testify mock implementations of the application
// ports for unit testing services without a real AWS backend.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/content"
	"trustnet-backend/domain/events"
	"trustnet-backend/domain/threat"
	"trustnet-backend/domain/user"
)

// MockThreatRepository mocks ports.ThreatRepository
type MockThreatRepository struct {
	mock.Mock
}

func (m *MockThreatRepository) Save(ctx context.Context, t *threat.Threat) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockThreatRepository) GetByKey(ctx context.Context, key threat.Key) (*threat.Threat, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threat.Threat), args.Error(1)
}

func (m *MockThreatRepository) GetByArtifact(ctx context.Context, artifact string) (*threat.Threat, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threat.Threat), args.Error(1)
}

func (m *MockThreatRepository) List(ctx context.Context) ([]*threat.Threat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*threat.Threat), args.Error(1)
}

func (m *MockThreatRepository) ListByStatus(ctx context.Context, status threat.Status) ([]*threat.Threat, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*threat.Threat), args.Error(1)
}

func (m *MockThreatRepository) ListBySubmitter(ctx context.Context, userID string) ([]*threat.Threat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*threat.Threat), args.Error(1)
}

func (m *MockThreatRepository) Delete(ctx context.Context, key threat.Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockLikeRepository mocks ports.LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Get(ctx context.Context, userID, threatID string) (*threat.Like, error) {
	args := m.Called(ctx, userID, threatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threat.Like), args.Error(1)
}

func (m *MockLikeRepository) ListByThreat(ctx context.Context, threatID string) ([]threat.Like, error) {
	args := m.Called(ctx, threatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]threat.Like), args.Error(1)
}

func (m *MockLikeRepository) ListByUser(ctx context.Context, userID string) ([]threat.Like, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]threat.Like), args.Error(1)
}

func (m *MockLikeRepository) Like(ctx context.Context, userID string, key threat.Key) error {
	args := m.Called(ctx, userID, key)
	return args.Error(0)
}

func (m *MockLikeRepository) Unlike(ctx context.Context, userID string, key threat.Key) error {
	args := m.Called(ctx, userID, key)
	return args.Error(0)
}

// MockUserRepository mocks ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockArticleRepository mocks ports.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Save(ctx context.Context, a *content.Article) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, articleID string) (*content.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByTitle(ctx context.Context, title string) (*content.Article, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Article), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*content.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.Article), args.Error(1)
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, userID string) ([]*content.Article, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.Article), args.Error(1)
}

func (m *MockArticleRepository) Delete(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

// MockReportRepository mocks ports.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Save(ctx context.Context, r *content.ScamReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportRepository) GetByKey(ctx context.Context, key content.ReportKey) (*content.ScamReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ScamReport), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context) ([]*content.ScamReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.ScamReport), args.Error(1)
}

func (m *MockReportRepository) ListByAuthor(ctx context.Context, userID string) ([]*content.ScamReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.ScamReport), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, key content.ReportKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockBatchDeleter mocks ports.BatchDeleter
type MockBatchDeleter struct {
	mock.Mock
}

func (m *MockBatchDeleter) BatchDelete(ctx context.Context, records []ports.DeletableRecord) ([]ports.DeletableRecord, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.DeletableRecord), args.Error(1)
}

// MockBlobStore mocks ports.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, ttl)
	return args.String(0), args.Error(1)
}

// MockNotifier mocks ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Subscribe(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockNotifier) PublishThreatVerified(ctx context.Context, t *threat.Threat, submitterEmail string) error {
	args := m.Called(ctx, t, submitterEmail)
	return args.Error(0)
}

// MockEventPublisher mocks ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}
