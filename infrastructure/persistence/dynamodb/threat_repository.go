package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/threat"
)

// ThreatRepository implements threat persistence using DynamoDB.
// The table key is (threatId, createdAt); SubmitterIndex provides the
// submittedBy lookup used by the cascade.
type ThreatRepository struct {
	client         *dynamodb.Client
	tableName      string
	submitterIndex string
	logger         *zap.Logger
}

// NewThreatRepository creates a new ThreatRepository
func NewThreatRepository(client *dynamodb.Client, tableName, submitterIndex string, logger *zap.Logger) ports.ThreatRepository {
	return &ThreatRepository{
		client:         client,
		tableName:      tableName,
		submitterIndex: submitterIndex,
		logger:         logger,
	}
}

// Save persists a threat record
func (r *ThreatRepository) Save(ctx context.Context, t *threat.Threat) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("failed to marshal threat: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		r.logger.Error("Failed to save threat",
			zap.Error(err),
			zap.String("threatID", t.ThreatID),
		)
		return fmt.Errorf("failed to save threat: %w", err)
	}

	return nil
}

// GetByKey retrieves a threat by its composite key; nil when absent
func (r *ThreatRepository) GetByKey(ctx context.Context, key threat.Key) (*threat.Threat, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       threatKeyAV(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get threat: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var t threat.Threat
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal threat: %w", err)
	}
	return &t, nil
}

// GetByArtifact finds the threat reporting an artifact, if any. Artifacts
// carry no index of their own; this is the uniqueness probe behind the
// check-then-insert on create.
func (r *ThreatRepository) GetByArtifact(ctx context.Context, artifact string) (*threat.Threat, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("artifact").Equal(expression.Value(artifact))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan threats by artifact: %w", err)
		}
		if len(page.Items) > 0 {
			var t threat.Threat
			if err := attributevalue.UnmarshalMap(page.Items[0], &t); err != nil {
				return nil, fmt.Errorf("failed to unmarshal threat: %w", err)
			}
			return &t, nil
		}
	}

	return nil, nil
}

// List retrieves all viewable threats
func (r *ThreatRepository) List(ctx context.Context) ([]*threat.Threat, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("viewable").Equal(expression.Value(threat.Viewable))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return r.scan(ctx, expr)
}

// ListByStatus retrieves threats in a verification state
func (r *ThreatRepository) ListByStatus(ctx context.Context, status threat.Status) ([]*threat.Threat, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("status").Equal(expression.Value(string(status)))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	return r.scan(ctx, expr)
}

// ListBySubmitter retrieves threats submitted by a user via SubmitterIndex
func (r *ThreatRepository) ListBySubmitter(ctx context.Context, userID string) ([]*threat.Threat, error) {
	var threats []*threat.Threat

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.submitterIndex),
		KeyConditionExpression: aws.String("submittedBy = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query threats by submitter: %w", err)
		}
		var pageThreats []*threat.Threat
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageThreats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal threats: %w", err)
		}
		threats = append(threats, pageThreats...)
	}

	return threats, nil
}

// Delete removes a threat record
func (r *ThreatRepository) Delete(ctx context.Context, key threat.Key) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       threatKeyAV(key),
	}); err != nil {
		return fmt.Errorf("failed to delete threat: %w", err)
	}
	return nil
}

// scan runs a filtered scan over the threats table
func (r *ThreatRepository) scan(ctx context.Context, expr expression.Expression) ([]*threat.Threat, error) {
	var threats []*threat.Threat

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan threats: %w", err)
		}
		var pageThreats []*threat.Threat
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageThreats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal threats: %w", err)
		}
		threats = append(threats, pageThreats...)
	}

	return threats, nil
}
