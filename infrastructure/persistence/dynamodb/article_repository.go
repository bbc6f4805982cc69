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
	"trustnet-backend/domain/content"
)

// ArticleRepository implements article persistence using DynamoDB
type ArticleRepository struct {
	client      *dynamodb.Client
	tableName   string
	authorIndex string
	logger      *zap.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(client *dynamodb.Client, tableName, authorIndex string, logger *zap.Logger) ports.ArticleRepository {
	return &ArticleRepository{
		client:      client,
		tableName:   tableName,
		authorIndex: authorIndex,
		logger:      logger,
	}
}

// Save persists an article record
func (r *ArticleRepository) Save(ctx context.Context, a *content.Article) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		r.logger.Error("Failed to save article", zap.Error(err), zap.String("articleID", a.ArticleID))
		return fmt.Errorf("failed to save article: %w", err)
	}

	return nil
}

// GetByID retrieves an article by ID; nil when absent
func (r *ArticleRepository) GetByID(ctx context.Context, articleID string) (*content.Article, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"articleId": &types.AttributeValueMemberS{Value: articleID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var a content.Article
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal article: %w", err)
	}
	return &a, nil
}

// GetByTitle finds the article with an exact title, if any. Titles carry no
// index; this is the uniqueness probe behind the check-then-insert on create.
func (r *ArticleRepository) GetByTitle(ctx context.Context, title string) (*content.Article, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("title").Equal(expression.Value(title))).
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
			return nil, fmt.Errorf("failed to scan articles by title: %w", err)
		}
		if len(page.Items) > 0 {
			var a content.Article
			if err := attributevalue.UnmarshalMap(page.Items[0], &a); err != nil {
				return nil, fmt.Errorf("failed to unmarshal article: %w", err)
			}
			return &a, nil
		}
	}

	return nil, nil
}

// List retrieves all articles
func (r *ArticleRepository) List(ctx context.Context) ([]*content.Article, error) {
	var articles []*content.Article

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan articles: %w", err)
		}
		var pageArticles []*content.Article
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageArticles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal articles: %w", err)
		}
		articles = append(articles, pageArticles...)
	}

	return articles, nil
}

// ListByAuthor retrieves articles written by a user via AuthorIndex
func (r *ArticleRepository) ListByAuthor(ctx context.Context, userID string) ([]*content.Article, error) {
	var articles []*content.Article

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.authorIndex),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query articles by author: %w", err)
		}
		var pageArticles []*content.Article
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageArticles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal articles: %w", err)
		}
		articles = append(articles, pageArticles...)
	}

	return articles, nil
}

// Delete removes an article record
func (r *ArticleRepository) Delete(ctx context.Context, articleID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"articleId": &types.AttributeValueMemberS{Value: articleID},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}
