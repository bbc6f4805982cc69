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
	"trustnet-backend/domain/content"
)

// ReportRepository implements scam report persistence using DynamoDB.
// The table key is (reportId, createdAt), mirroring the threats table.
type ReportRepository struct {
	client      *dynamodb.Client
	tableName   string
	authorIndex string
	logger      *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(client *dynamodb.Client, tableName, authorIndex string, logger *zap.Logger) ports.ReportRepository {
	return &ReportRepository{
		client:      client,
		tableName:   tableName,
		authorIndex: authorIndex,
		logger:      logger,
	}
}

// Save persists a scam report record
func (r *ReportRepository) Save(ctx context.Context, report *content.ScamReport) error {
	item, err := attributevalue.MarshalMap(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		r.logger.Error("Failed to save report", zap.Error(err), zap.String("reportID", report.ReportID))
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetByKey retrieves a report by its composite key; nil when absent
func (r *ReportRepository) GetByKey(ctx context.Context, key content.ReportKey) (*content.ScamReport, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       reportKeyAV(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var report content.ScamReport
	if err := attributevalue.UnmarshalMap(out.Item, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// List retrieves all scam reports
func (r *ReportRepository) List(ctx context.Context) ([]*content.ScamReport, error) {
	var reports []*content.ScamReport

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reports: %w", err)
		}
		var pageReports []*content.ScamReport
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageReports); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reports: %w", err)
		}
		reports = append(reports, pageReports...)
	}

	return reports, nil
}

// ListByAuthor retrieves reports filed by a user via AuthorIndex
func (r *ReportRepository) ListByAuthor(ctx context.Context, userID string) ([]*content.ScamReport, error) {
	var reports []*content.ScamReport

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
			return nil, fmt.Errorf("failed to query reports by author: %w", err)
		}
		var pageReports []*content.ScamReport
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageReports); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reports: %w", err)
		}
		reports = append(reports, pageReports...)
	}

	return reports, nil
}

// Delete removes a report record
func (r *ReportRepository) Delete(ctx context.Context, key content.ReportKey) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       reportKeyAV(key),
	}); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// reportKeyAV builds the reports table key
func reportKeyAV(key content.ReportKey) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"reportId":  &types.AttributeValueMemberS{Value: key.ReportID},
		"createdAt": &types.AttributeValueMemberS{Value: key.CreatedAt},
	}
}
