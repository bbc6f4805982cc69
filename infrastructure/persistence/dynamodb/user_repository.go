package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/user"
)

// UserRepository implements user persistence using DynamoDB.
// EmailIndex provides the login and uniqueness lookup by email.
type UserRepository struct {
	client     *dynamodb.Client
	tableName  string
	emailIndex string
	logger     *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName, emailIndex string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:     client,
		tableName:  tableName,
		emailIndex: emailIndex,
		logger:     logger,
	}
}

// Save persists a user record
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		r.logger.Error("Failed to save user", zap.Error(err), zap.String("userID", u.UserID))
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID; nil when absent
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var u user.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by email via EmailIndex; nil when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.emailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var u user.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var users []*user.User

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}
		var pageUsers []*user.User
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageUsers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal users: %w", err)
		}
		users = append(users, pageUsers...)
	}

	return users, nil
}

// Delete removes a user record
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
