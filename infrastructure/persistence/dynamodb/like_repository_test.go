package dynamodb

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
)

func testLikeRepo() *LikeRepository {
	return &LikeRepository{
		likesTable:    "trustnet-likes",
		threatsTable:  "trustnet-threats",
		threatIdIndex: "ThreatIdIndex",
		logger:        zap.NewNop(),
	}
}

func okReason() types.CancellationReason {
	return types.CancellationReason{Code: aws.String("None")}
}

func failedReason(item map[string]types.AttributeValue) types.CancellationReason {
	return types.CancellationReason{
		Code: aws.String(conditionalCheckFailed),
		Item: item,
	}
}

func canceledWith(reasons ...types.CancellationReason) error {
	return &types.TransactionCanceledException{
		Message:             aws.String("Transaction cancelled"),
		CancellationReasons: reasons,
	}
}

func TestClassifyLikeCancellation(t *testing.T) {
	repo := testLikeRepo()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "threat guard failed means threat gone",
			err:  canceledWith(failedReason(nil), okReason()),
			want: ports.ErrThreatGone,
		},
		{
			name: "membership guard failed means already liked",
			err:  canceledWith(okReason(), failedReason(nil)),
			want: ports.ErrAlreadyLiked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.classifyLikeCancellation(tt.err, "user-1", "threat-1")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyLikeCancellation_ThreatGoneWinsOverMembership(t *testing.T) {
	repo := testLikeRepo()

	// Both guards can fail in the same transaction when the threat vanished
	// while a stale membership row survived. The vanished threat is the
	// condition the caller must hear about.
	err := repo.classifyLikeCancellation(
		canceledWith(failedReason(nil), failedReason(nil)),
		"user-1", "threat-1",
	)

	assert.ErrorIs(t, err, ports.ErrThreatGone)
}

func TestClassifyLikeCancellation_UnrecognizedShapes(t *testing.T) {
	repo := testLikeRepo()

	tests := []struct {
		name string
		err  error
	}{
		{"not a cancellation", errors.New("connection reset")},
		{"wrong reason count", canceledWith(okReason())},
		{"no condition failure", canceledWith(okReason(), okReason())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.classifyLikeCancellation(tt.err, "user-1", "threat-1")
			assert.Error(t, got)
			assert.NotErrorIs(t, got, ports.ErrThreatGone)
			assert.NotErrorIs(t, got, ports.ErrAlreadyLiked)
		})
	}
}

func TestClassifyUnlikeCancellation(t *testing.T) {
	repo := testLikeRepo()
	threatItem := map[string]types.AttributeValue{
		"threatId": &types.AttributeValueMemberS{Value: "threat-1"},
		"likes":    &types.AttributeValueMemberN{Value: "0"},
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "counter guard failed with no item means threat gone",
			err:  canceledWith(failedReason(nil), okReason()),
			want: ports.ErrThreatGone,
		},
		{
			name: "counter guard failed with returned item means counter at zero",
			err:  canceledWith(failedReason(threatItem), okReason()),
			want: ports.ErrNotLiked,
		},
		{
			name: "membership guard failed means not liked",
			err:  canceledWith(okReason(), failedReason(nil)),
			want: ports.ErrNotLiked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.classifyUnlikeCancellation(tt.err, "user-1", "threat-1")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyUnlikeCancellation_TransportError(t *testing.T) {
	repo := testLikeRepo()
	boom := errors.New("dial tcp: timeout")

	got := repo.classifyUnlikeCancellation(boom, "user-1", "threat-1")

	assert.ErrorIs(t, got, boom)
	assert.NotErrorIs(t, got, ports.ErrThreatGone)
	assert.NotErrorIs(t, got, ports.ErrNotLiked)
}
