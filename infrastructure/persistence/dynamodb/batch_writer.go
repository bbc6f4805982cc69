package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/content"
	"trustnet-backend/domain/threat"
)

// maxBatchWriteItems is the BatchWriteItem request limit. The limit applies
// to the whole request, not per table, so chunking happens before grouping.
const maxBatchWriteItems = 25

// BatchWriter implements ports.BatchDeleter over BatchWriteItem. One call may
// touch several tables; each outgoing request carries at most 25 delete
// requests total, grouped by destination table. Unprocessed items are mapped
// back to records and returned without retrying, so callers can downgrade
// them to warnings.
type BatchWriter struct {
	client *dynamodb.Client
	tables TableNames
	logger *zap.Logger
}

// TableNames maps record kinds to their DynamoDB tables
type TableNames struct {
	Threats  string
	Likes    string
	Articles string
	Reports  string
}

// NewBatchWriter creates a new BatchWriter
func NewBatchWriter(client *dynamodb.Client, tables TableNames, logger *zap.Logger) ports.BatchDeleter {
	return &BatchWriter{
		client: client,
		tables: tables,
		logger: logger,
	}
}

// BatchDelete deletes the records in chunks of at most 25 items per request
func (w *BatchWriter) BatchDelete(ctx context.Context, records []ports.DeletableRecord) ([]ports.DeletableRecord, error) {
	var unprocessed []ports.DeletableRecord

	for _, chunk := range chunkRecords(records, maxBatchWriteItems) {
		requestItems := make(map[string][]types.WriteRequest)
		for _, record := range chunk {
			table, key, err := w.recordKey(record)
			if err != nil {
				return unprocessed, err
			}
			requestItems[table] = append(requestItems[table], types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}

		out, err := w.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: requestItems,
		})
		if err != nil {
			return unprocessed, fmt.Errorf("batch delete failed: %w", err)
		}

		leftover := w.collectUnprocessed(out.UnprocessedItems)
		if len(leftover) > 0 {
			w.logger.Warn("Batch delete left unprocessed items",
				zap.Int("count", len(leftover)),
			)
			unprocessed = append(unprocessed, leftover...)
		}
	}

	return unprocessed, nil
}

// chunkRecords splits records into slices of at most size items
func chunkRecords(records []ports.DeletableRecord, size int) [][]ports.DeletableRecord {
	var chunks [][]ports.DeletableRecord
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// recordKey resolves a record to its destination table and primary key
func (w *BatchWriter) recordKey(record ports.DeletableRecord) (string, map[string]types.AttributeValue, error) {
	switch record.Kind {
	case ports.KindThreat:
		return w.tables.Threats, threatKeyAV(*record.ThreatKey), nil
	case ports.KindLike:
		return w.tables.Likes, likeKeyAV(record.LikeKey.UserID, record.LikeKey.ThreatID), nil
	case ports.KindArticle:
		return w.tables.Articles, map[string]types.AttributeValue{
			"articleId": &types.AttributeValueMemberS{Value: record.ArticleID},
		}, nil
	case ports.KindReport:
		return w.tables.Reports, reportKeyAV(*record.ReportKey), nil
	}
	return "", nil, fmt.Errorf("unknown record kind %q", record.Kind)
}

// collectUnprocessed maps UnprocessedItems back into deletable records
func (w *BatchWriter) collectUnprocessed(items map[string][]types.WriteRequest) []ports.DeletableRecord {
	var records []ports.DeletableRecord
	for table, requests := range items {
		for _, request := range requests {
			if request.DeleteRequest == nil {
				continue
			}
			record, ok := w.recordFromKey(table, request.DeleteRequest.Key)
			if !ok {
				w.logger.Warn("Unprocessed item from unexpected table", zap.String("table", table))
				continue
			}
			records = append(records, record)
		}
	}
	return records
}

// recordFromKey rebuilds a deletable record from a table name and key map
func (w *BatchWriter) recordFromKey(table string, key map[string]types.AttributeValue) (ports.DeletableRecord, bool) {
	switch table {
	case w.tables.Threats:
		return ports.ThreatRecord(threat.Key{
			ThreatID:  stringAttr(key, "threatId"),
			CreatedAt: stringAttr(key, "createdAt"),
		}), true
	case w.tables.Likes:
		return ports.LikeRecord(stringAttr(key, "userId"), stringAttr(key, "threatId")), true
	case w.tables.Articles:
		return ports.ArticleRecord(stringAttr(key, "articleId")), true
	case w.tables.Reports:
		return ports.ReportRecord(content.ReportKey{
			ReportID:  stringAttr(key, "reportId"),
			CreatedAt: stringAttr(key, "createdAt"),
		}), true
	}
	return ports.DeletableRecord{}, false
}

// stringAttr extracts a string attribute value, empty when absent
func stringAttr(key map[string]types.AttributeValue, name string) string {
	if attr, ok := key[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}
