package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/content"
	"trustnet-backend/domain/threat"
	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/tests/fixtures"
	"trustnet-backend/tests/mocks"
)

type cascadeMocks struct {
	threats  *mocks.MockThreatRepository
	likes    *mocks.MockLikeRepository
	users    *mocks.MockUserRepository
	articles *mocks.MockArticleRepository
	reports  *mocks.MockReportRepository
	batch    *mocks.MockBatchDeleter
	blobs    *mocks.MockBlobStore
	events   *mocks.MockEventPublisher
}

func newCascadeService(t *testing.T) (*CascadeService, *cascadeMocks) {
	t.Helper()
	m := &cascadeMocks{
		threats:  new(mocks.MockThreatRepository),
		likes:    new(mocks.MockLikeRepository),
		users:    new(mocks.MockUserRepository),
		articles: new(mocks.MockArticleRepository),
		reports:  new(mocks.MockReportRepository),
		batch:    new(mocks.MockBatchDeleter),
		blobs:    new(mocks.MockBlobStore),
		events:   new(mocks.MockEventPublisher),
	}
	svc := NewCascadeService(
		m.threats, m.likes, m.users, m.articles, m.reports,
		m.batch, m.blobs, m.events, nil, nil, zap.NewNop(),
	)
	return svc, m
}

func TestCascadeService_DeleteThreat_RemovesLikesThenRoot(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	target := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()
	likeRows := []threat.Like{
		fixtures.LikeFor("user-a", target),
		fixtures.LikeFor("user-b", target),
	}

	m.threats.On("GetByKey", ctx, target.Key()).Return(target, nil)
	m.likes.On("ListByThreat", ctx, target.ThreatID).Return(likeRows, nil)
	m.batch.On("BatchDelete", ctx, mock.MatchedBy(func(records []ports.DeletableRecord) bool {
		return len(records) == 2 && records[0].Kind == ports.KindLike
	})).Return(nil, nil)
	m.threats.On("Delete", ctx, target.Key()).Return(nil)
	m.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.DeleteThreat(ctx, "owner-1", false, target.Key())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Deleted) // two likes plus the root
	assert.Empty(t, result.Warnings)
	m.batch.AssertExpectations(t)
	m.threats.AssertExpectations(t)
}

func TestCascadeService_DeleteThreat_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	key := threat.Key{ThreatID: "missing", CreatedAt: "2026-01-01T00:00:00Z"}

	m.threats.On("GetByKey", ctx, key).Return(nil, nil)

	result, err := svc.DeleteThreat(ctx, "owner-1", false, key)

	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCascadeService_DeleteThreat_ForbiddenForStrangers(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	target := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()

	m.threats.On("GetByKey", ctx, target.Key()).Return(target, nil)

	result, err := svc.DeleteThreat(ctx, "stranger", false, target.Key())

	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsForbidden(err))
	m.threats.AssertNotCalled(t, "Delete", ctx, target.Key())
}

func TestCascadeService_DeleteThreat_AdminMayDelete(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	target := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()

	m.threats.On("GetByKey", ctx, target.Key()).Return(target, nil)
	m.likes.On("ListByThreat", ctx, target.ThreatID).Return([]threat.Like{}, nil)
	m.threats.On("Delete", ctx, target.Key()).Return(nil)
	m.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.DeleteThreat(ctx, "admin-1", true, target.Key())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
}

func TestCascadeService_DeleteThreat_DiscoveryFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	target := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()

	m.threats.On("GetByKey", ctx, target.Key()).Return(target, nil)
	m.likes.On("ListByThreat", ctx, target.ThreatID).Return(nil, errors.New("index unavailable"))
	m.threats.On("Delete", ctx, target.Key()).Return(nil)
	m.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.DeleteThreat(ctx, "owner-1", false, target.Key())

	// The root delete must still happen and succeed.
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Len(t, result.Warnings, 1)
	m.threats.AssertCalled(t, "Delete", ctx, target.Key())
}

func TestCascadeService_DeleteThreat_UnprocessedBecomeWarnings(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	target := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()
	likeRows := []threat.Like{fixtures.LikeFor("user-a", target)}
	leftover := []ports.DeletableRecord{ports.LikeRecord("user-a", target.ThreatID)}

	m.threats.On("GetByKey", ctx, target.Key()).Return(target, nil)
	m.likes.On("ListByThreat", ctx, target.ThreatID).Return(likeRows, nil)
	m.batch.On("BatchDelete", ctx, mock.Anything).Return(leftover, nil)
	m.threats.On("Delete", ctx, target.Key()).Return(nil)
	m.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.DeleteThreat(ctx, "owner-1", false, target.Key())

	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "not deleted")
}

func TestCascadeService_DeleteThreat_RootDeleteFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	target := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()

	m.threats.On("GetByKey", ctx, target.Key()).Return(target, nil)
	m.likes.On("ListByThreat", ctx, target.ThreatID).Return([]threat.Like{}, nil)
	m.threats.On("Delete", ctx, target.Key()).Return(errors.New("throttled"))

	result, err := svc.DeleteThreat(ctx, "owner-1", false, target.Key())

	assert.Nil(t, result)
	require.Error(t, err)
	m.events.AssertNotCalled(t, "Publish", ctx, mock.Anything)
}

func TestCascadeService_DeleteUser_CollectsEveryDependentRecord(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)

	owner := fixtures.NewUserBuilder().WithID("owner-1").WithPicture("profile/owner-1/pic").Build()
	ownThreat := fixtures.NewThreatBuilder().WithSubmitter("owner-1").Build()
	orphanLike := fixtures.LikeFor("user-b", ownThreat)
	// The user also liked their own threat; it must not be collected twice.
	selfLike := fixtures.LikeFor("owner-1", ownThreat)
	otherThreat := fixtures.NewThreatBuilder().WithSubmitter("user-c").Build()
	foreignLike := fixtures.LikeFor("owner-1", otherThreat)
	article := fixtures.NewArticleBuilder().WithAuthor("owner-1").WithImage("article/owner-1/cover").Build()
	report := fixtures.NewReportBuilder().WithAuthor("owner-1").Build()

	m.users.On("GetByID", ctx, "owner-1").Return(owner, nil)
	m.blobs.On("DeleteObject", ctx, "profile/owner-1/pic").Return(nil)
	m.threats.On("ListBySubmitter", ctx, "owner-1").Return([]*threat.Threat{ownThreat}, nil)
	m.likes.On("ListByThreat", ctx, ownThreat.ThreatID).Return([]threat.Like{orphanLike, selfLike}, nil)
	m.likes.On("ListByUser", ctx, "owner-1").Return([]threat.Like{selfLike, foreignLike}, nil)
	m.articles.On("ListByAuthor", ctx, "owner-1").Return([]*content.Article{article}, nil)
	m.blobs.On("DeleteObject", ctx, "article/owner-1/cover").Return(nil)
	m.reports.On("ListByAuthor", ctx, "owner-1").Return([]*content.ScamReport{report}, nil)

	var batched []ports.DeletableRecord
	m.batch.On("BatchDelete", ctx, mock.Anything).Run(func(args mock.Arguments) {
		batched = args.Get(1).([]ports.DeletableRecord)
	}).Return(nil, nil)
	m.users.On("Delete", ctx, "owner-1").Return(nil)
	m.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.DeleteUser(ctx, "owner-1", false, "owner-1")

	require.NoError(t, err)
	// 1 threat + 3 distinct likes + 1 article + 1 report.
	assert.Len(t, batched, 6)
	assert.Equal(t, 7, result.Deleted) // dependents plus the user record
	assert.Empty(t, result.Warnings)

	kinds := map[ports.RecordKind]int{}
	for _, record := range batched {
		kinds[record.Kind]++
	}
	assert.Equal(t, 1, kinds[ports.KindThreat])
	assert.Equal(t, 3, kinds[ports.KindLike])
	assert.Equal(t, 1, kinds[ports.KindArticle])
	assert.Equal(t, 1, kinds[ports.KindReport])
}

func TestCascadeService_DeleteUser_ForbiddenForOtherCustomers(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	owner := fixtures.NewUserBuilder().WithID("owner-1").Build()

	m.users.On("GetByID", ctx, "owner-1").Return(owner, nil)

	result, err := svc.DeleteUser(ctx, "stranger", false, "owner-1")

	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsForbidden(err))
	m.users.AssertNotCalled(t, "Delete", ctx, "owner-1")
}

func TestCascadeService_DeleteUser_ImageFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	owner := fixtures.NewUserBuilder().WithID("owner-1").WithPicture("profile/owner-1/pic").Build()

	m.users.On("GetByID", ctx, "owner-1").Return(owner, nil)
	m.blobs.On("DeleteObject", ctx, "profile/owner-1/pic").Return(errors.New("access denied"))
	m.threats.On("ListBySubmitter", ctx, "owner-1").Return([]*threat.Threat{}, nil)
	m.likes.On("ListByUser", ctx, "owner-1").Return([]threat.Like{}, nil)
	m.articles.On("ListByAuthor", ctx, "owner-1").Return([]*content.Article{}, nil)
	m.reports.On("ListByAuthor", ctx, "owner-1").Return([]*content.ScamReport{}, nil)
	m.users.On("Delete", ctx, "owner-1").Return(nil)
	m.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.DeleteUser(ctx, "owner-1", false, "owner-1")

	require.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
}

func TestCascadeService_DeleteUser_RootDeleteFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	svc, m := newCascadeService(t)
	owner := fixtures.NewUserBuilder().WithID("owner-1").Build()

	m.users.On("GetByID", ctx, "owner-1").Return(owner, nil)
	m.threats.On("ListBySubmitter", ctx, "owner-1").Return([]*threat.Threat{}, nil)
	m.likes.On("ListByUser", ctx, "owner-1").Return([]threat.Like{}, nil)
	m.articles.On("ListByAuthor", ctx, "owner-1").Return([]*content.Article{}, nil)
	m.reports.On("ListByAuthor", ctx, "owner-1").Return([]*content.ScamReport{}, nil)
	m.users.On("Delete", ctx, "owner-1").Return(errors.New("conditional check failed"))

	result, err := svc.DeleteUser(ctx, "owner-1", false, "owner-1")

	assert.Nil(t, result)
	require.Error(t, err)
}
