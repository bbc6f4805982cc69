package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/threat"
	"trustnet-backend/pkg/utils"
)

const conditionalCheckFailed = "ConditionalCheckFailed"

// LikeRepository implements the like membership store and the conditional
// like/unlike transactions against DynamoDB.
//
// Each call to Like or Unlike is a single all-or-nothing TransactWriteItems
// with two operations: the counter update on the threats table and the
// membership write on the likes table. The transaction's condition
// expressions are the correctness mechanism under concurrency; the
// cancellation reasons are classified into the port's sentinel errors so the
// service layer can tell an idempotency race from a vanished threat.
type LikeRepository struct {
	client        *dynamodb.Client
	likesTable    string
	threatsTable  string
	threatIdIndex string
	logger        *zap.Logger
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(client *dynamodb.Client, likesTable, threatsTable, threatIdIndex string, logger *zap.Logger) ports.LikeRepository {
	return &LikeRepository{
		client:        client,
		likesTable:    likesTable,
		threatsTable:  threatsTable,
		threatIdIndex: threatIdIndex,
		logger:        logger,
	}
}

// Get retrieves the membership row for (userID, threatID)
func (r *LikeRepository) Get(ctx context.Context, userID, threatID string) (*threat.Like, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.likesTable),
		Key:       likeKeyAV(userID, threatID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var like threat.Like
	if err := attributevalue.UnmarshalMap(out.Item, &like); err != nil {
		return nil, fmt.Errorf("failed to unmarshal like: %w", err)
	}
	return &like, nil
}

// ListByThreat retrieves all likes on a threat via the reverse lookup index
func (r *LikeRepository) ListByThreat(ctx context.Context, threatID string) ([]threat.Like, error) {
	var likes []threat.Like

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.likesTable),
		IndexName:              aws.String(r.threatIdIndex),
		KeyConditionExpression: aws.String("threatId = :threatId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":threatId": &types.AttributeValueMemberS{Value: threatID},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query likes by threat: %w", err)
		}
		var pageLikes []threat.Like
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageLikes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal likes: %w", err)
		}
		likes = append(likes, pageLikes...)
	}

	return likes, nil
}

// ListByUser retrieves all likes placed by a user
func (r *LikeRepository) ListByUser(ctx context.Context, userID string) ([]threat.Like, error) {
	var likes []threat.Like

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.likesTable),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query likes by user: %w", err)
		}
		var pageLikes []threat.Like
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageLikes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal likes: %w", err)
		}
		likes = append(likes, pageLikes...)
	}

	return likes, nil
}

// Like atomically increments the threat's counter and inserts the membership
// row. Item order in the transaction is fixed: index 0 is the counter update,
// index 1 the membership insert; classifyCancellation depends on it.
func (r *LikeRepository) Like(ctx context.Context, userID string, key threat.Key) error {
	likeItem, err := attributevalue.MarshalMap(threat.NewLike(userID, key))
	if err != nil {
		return fmt.Errorf("failed to marshal like: %w", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:           aws.String(r.threatsTable),
					Key:                 threatKeyAV(key),
					UpdateExpression:    aws.String("SET likes = likes + :one, updatedAt = :now"),
					ConditionExpression: aws.String("attribute_exists(threatId) AND attribute_exists(createdAt)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
						":now": &types.AttributeValueMemberS{Value: utils.NowRFC3339()},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.likesTable),
					Item:                likeItem,
					ConditionExpression: aws.String("attribute_not_exists(userId) AND attribute_not_exists(threatId)"),
				},
			},
		},
	})
	if err != nil {
		return r.classifyLikeCancellation(err, userID, key.ThreatID)
	}

	return nil
}

// Unlike atomically decrements the counter and deletes the membership row.
// The counter update asks for ALL_OLD on condition failure so a vanished
// threat can be told apart from a counter already at zero.
func (r *LikeRepository) Unlike(ctx context.Context, userID string, key threat.Key) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:           aws.String(r.threatsTable),
					Key:                 threatKeyAV(key),
					UpdateExpression:    aws.String("SET likes = likes - :one, updatedAt = :now"),
					ConditionExpression: aws.String("attribute_exists(threatId) AND attribute_exists(createdAt) AND likes > :zero"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one":  &types.AttributeValueMemberN{Value: "1"},
						":zero": &types.AttributeValueMemberN{Value: "0"},
						":now":  &types.AttributeValueMemberS{Value: utils.NowRFC3339()},
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				Delete: &types.Delete{
					TableName:           aws.String(r.likesTable),
					Key:                 likeKeyAV(userID, key.ThreatID),
					ConditionExpression: aws.String("attribute_exists(userId) AND attribute_exists(threatId)"),
				},
			},
		},
	})
	if err != nil {
		return r.classifyUnlikeCancellation(err, userID, key.ThreatID)
	}

	return nil
}

// classifyLikeCancellation maps a like transaction failure to a sentinel.
// Reason index 0 is the threat counter update, index 1 the membership insert.
func (r *LikeRepository) classifyLikeCancellation(err error, userID, threatID string) error {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return fmt.Errorf("like transaction failed: %w", err)
	}

	reasons := canceled.CancellationReasons
	if len(reasons) == 2 {
		if reasonFailed(reasons[0]) {
			// The existence guard on the threat row failed: the threat was
			// deleted between lookup and commit.
			return ports.ErrThreatGone
		}
		if reasonFailed(reasons[1]) {
			r.logger.Debug("Like lost idempotency race",
				zap.String("userID", userID),
				zap.String("threatID", threatID),
			)
			return ports.ErrAlreadyLiked
		}
	}

	return fmt.Errorf("like transaction canceled: %w", err)
}

// classifyUnlikeCancellation maps an unlike transaction failure to a
// sentinel. A failed counter guard with no returned item means the threat row
// is gone; with a returned item it means likes was already zero.
func (r *LikeRepository) classifyUnlikeCancellation(err error, userID, threatID string) error {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return fmt.Errorf("unlike transaction failed: %w", err)
	}

	reasons := canceled.CancellationReasons
	if len(reasons) == 2 {
		if reasonFailed(reasons[0]) {
			if len(reasons[0].Item) == 0 {
				return ports.ErrThreatGone
			}
			// Threat exists but likes was already at zero; the counter and
			// membership table drifted. Never decrement below zero.
			r.logger.Warn("Unlike refused on zero counter",
				zap.String("userID", userID),
				zap.String("threatID", threatID),
			)
			return ports.ErrNotLiked
		}
		if reasonFailed(reasons[1]) {
			return ports.ErrNotLiked
		}
	}

	return fmt.Errorf("unlike transaction canceled: %w", err)
}

// reasonFailed reports whether a cancellation reason is a condition failure
func reasonFailed(reason types.CancellationReason) bool {
	return reason.Code != nil && *reason.Code == conditionalCheckFailed
}

// likeKeyAV builds the likes table key
func likeKeyAV(userID, threatID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":   &types.AttributeValueMemberS{Value: userID},
		"threatId": &types.AttributeValueMemberS{Value: threatID},
	}
}

// threatKeyAV builds the threats table key
func threatKeyAV(key threat.Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"threatId":  &types.AttributeValueMemberS{Value: key.ThreatID},
		"createdAt": &types.AttributeValueMemberS{Value: key.CreatedAt},
	}
}
