package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	pkgerrors "trustnet-backend/pkg/errors"
	"trustnet-backend/tests/fixtures"
	"trustnet-backend/tests/mocks"
)

func newLikeService(threats *mocks.MockThreatRepository, likes *mocks.MockLikeRepository) *LikeService {
	return NewLikeService(threats, likes, nil, nil, zap.NewNop())
}

func TestLikeService_Like_Success(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(nil, nil)
	mockLikes.On("Like", ctx, "user-1", target.Key()).Return(nil)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Like(ctx, "user-1", target.Key())

	require.NoError(t, err)
	assert.Equal(t, OutcomeLiked, result.Outcome)
	mockLikes.AssertExpectations(t)
}

func TestLikeService_Like_FastPathAlreadyLiked(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()
	existing := fixtures.LikeFor("user-1", target)

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(&existing, nil)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Like(ctx, "user-1", target.Key())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyLiked, result.Outcome)
	// The transaction must not run when the membership row already exists.
	mockLikes.AssertNotCalled(t, "Like", ctx, "user-1", target.Key())
}

func TestLikeService_Like_LostRaceIsIdempotentSuccess(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(nil, nil)
	mockLikes.On("Like", ctx, "user-1", target.Key()).Return(ports.ErrAlreadyLiked)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Like(ctx, "user-1", target.Key())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyLiked, result.Outcome)
}

func TestLikeService_Like_ThreatDeletedConcurrently(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(nil, nil)
	mockLikes.On("Like", ctx, "user-1", target.Key()).Return(ports.ErrThreatGone)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Like(ctx, "user-1", target.Key())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err), "a vanished threat must surface as not found, not as already liked")
}

func TestLikeService_Like_TransportError(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()
	boom := errors.New("connection reset")

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(nil, nil)
	mockLikes.On("Like", ctx, "user-1", target.Key()).Return(boom)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Like(ctx, "user-1", target.Key())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestLikeService_Unlike_Success(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().WithLikes(3).Build()
	existing := fixtures.LikeFor("user-1", target)

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(&existing, nil)
	mockLikes.On("Unlike", ctx, "user-1", target.Key()).Return(nil)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Unlike(ctx, "user-1", target.Key())

	require.NoError(t, err)
	assert.Equal(t, OutcomeUnliked, result.Outcome)
	mockLikes.AssertExpectations(t)
}

func TestLikeService_Unlike_FastPathNotLiked(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(nil, nil)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Unlike(ctx, "user-1", target.Key())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyUnliked, result.Outcome)
	mockLikes.AssertNotCalled(t, "Unlike", ctx, "user-1", target.Key())
}

func TestLikeService_Unlike_LostRaceIsIdempotentSuccess(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()
	existing := fixtures.LikeFor("user-1", target)

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(&existing, nil)
	mockLikes.On("Unlike", ctx, "user-1", target.Key()).Return(ports.ErrNotLiked)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Unlike(ctx, "user-1", target.Key())

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyUnliked, result.Outcome)
}

func TestLikeService_Unlike_ThreatDeletedConcurrently(t *testing.T) {
	ctx := context.Background()
	mockThreats := new(mocks.MockThreatRepository)
	mockLikes := new(mocks.MockLikeRepository)
	target := fixtures.NewThreatBuilder().Build()
	existing := fixtures.LikeFor("user-1", target)

	mockLikes.On("Get", ctx, "user-1", target.ThreatID).Return(&existing, nil)
	mockLikes.On("Unlike", ctx, "user-1", target.Key()).Return(ports.ErrThreatGone)

	svc := newLikeService(mockThreats, mockLikes)
	result, err := svc.Unlike(ctx, "user-1", target.Key())

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
